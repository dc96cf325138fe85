//go:build arm64

package catalog

// Native is the family of the build architecture.
var Native = AArch64

// NativeArch is the compile-time architecture tuple.
func NativeArch() Arch { return Arch{Version: 8, Profile: 'A'} }
