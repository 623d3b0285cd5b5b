//go:build !devbypass

package verify

const bypassCompiledIn = false
