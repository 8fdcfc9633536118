package cli

import "testing"

// resetFlagValues restores flagValues to the flag defaults before a test
// mutates it, and registers a cleanup to restore it again afterward so
// tests in this package can run without interfering with each other.
func resetFlagValues(t *testing.T) {
	t.Helper()
	saved := flagValues
	flagValues = globalFlagValues{Root: ".", Output: "./organized"}
	t.Cleanup(func() { flagValues = saved })
}
