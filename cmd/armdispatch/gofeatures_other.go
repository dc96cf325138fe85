//go:build !arm64

package main

// printGoRuntimeFeatures has nothing to cross-check off AArch64; the
// x/sys/cpu ARM64 booleans are only populated there.
func printGoRuntimeFeatures() {}
