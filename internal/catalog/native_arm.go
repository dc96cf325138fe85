//go:build arm

package catalog

// Native is the family of the build architecture.
var Native = AArch32

// NativeArch is the compile-time floor; host discovery raises the
// version from the kernel's machine string.
func NativeArch() Arch { return Arch{Version: 6} }
