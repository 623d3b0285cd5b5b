package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

// GetEnv returns the value of the ENV variable key or defaultVal if it is unset.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

func GetEnvEnum(key string, defaultVal string, allowedValues []string) string {
	if !ContainsString(allowedValues, defaultVal) {
		log.Panic().Str("key", key).Str("value", defaultVal).Msg("Default value is not in the allowed values list.")
	}

	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}

	if !ContainsString(allowedValues, val) {
		log.Error().Str("key", key).Str("value", val).Msg("Value is not allowed. Fallback to default value.")
		return defaultVal
	}

	return val
}

func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}

	return defaultVal
}

func GetEnvAsFloat(key string, defaultVal float64) float64 {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseFloat(strVal, 64); err == nil {
		return val
	}

	return defaultVal
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsStringArr reads ENV and returns the values split by separator.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal := GetEnv(key, "")

	if len(strVal) == 0 {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	return strings.Split(strVal, sep)
}

// SetEnvFromDotEnv is the default setter used when applying a dotenv file, it overrides existing values.
func SetEnvFromDotEnv(key string, value string) error {
	return os.Setenv(key, value)
}

// ApplyDotEnvFile parses the dotenv file at path and applies every entry through setEnvFn.
func ApplyDotEnvFile(absolutePathToEnvFile string, setEnvFn func(k string, v string) error) error {
	env, err := gotenv.Read(absolutePathToEnvFile)
	if err != nil {
		return err
	}

	for key, val := range env {
		if err := setEnvFn(key, val); err != nil {
			return err
		}
	}

	return nil
}

func ContainsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}

	return false
}
