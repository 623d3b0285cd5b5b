//go:build devbypass

package verify

const bypassCompiledIn = true
