//go:build !arm && !arm64

package catalog

// Native defaults to the 64-bit family on non-ARM builds so the module
// and its tests build everywhere; host discovery degrades to generic.
var Native = AArch64

// NativeArch is the compile-time architecture tuple.
func NativeArch() Arch { return Arch{Version: 8, Profile: 'A'} }
