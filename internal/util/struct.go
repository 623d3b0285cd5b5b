package util

import (
	"fmt"
	"reflect"
)

// IsStructInitialized returns an error if any of the exported (pointer/interface) fields
// of the passed struct is still nil. Fields tagged with `wire:"-"` are still checked.
func IsStructInitialized(obj interface{}) error {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return fmt.Errorf("passed struct pointer is nil")
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return fmt.Errorf("passed value is not a struct, but %s", val.Kind())
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !typ.Field(i).IsExported() {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if field.IsNil() {
				return fmt.Errorf("struct field %s is not initialized", typ.Field(i).Name)
			}
		default:
		}
	}

	return nil
}
