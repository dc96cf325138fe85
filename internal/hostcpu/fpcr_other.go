// FPCR is an AArch64 register; elsewhere these succeed without side
// effect.

//go:build !arm64

package hostcpu

// FlushToZero reports whether flush-to-zero is active; always false
// off AArch64.
func FlushToZero() bool { return false }

// SetFlushToZero is a no-op off AArch64.
func SetFlushToZero(bool) {}

// DefaultNaN reports whether default-NaN mode is active; always false
// off AArch64.
func DefaultNaN() bool { return false }

// SetDefaultNaN is a no-op off AArch64.
func SetDefaultNaN(bool) {}
