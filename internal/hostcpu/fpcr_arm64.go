//go:build arm64

package hostcpu

import "github.com/hartyporpoise/armdispatch/internal/catalog"

// FPCR bit positions.
const (
	fpcrFZ16 = 1 << 19
	fpcrFZ   = 1 << 24
	fpcrDN   = 1 << 25
)

// Implemented in fpcr_arm64.s.
func getFPCR() uint64
func setFPCR(val uint64)

// FlushToZero reports whether FPCR.FZ is set.
func FlushToZero() bool {
	return getFPCR()&fpcrFZ != 0
}

// SetFlushToZero sets or clears FPCR.FZ; when the host supports
// fullfp16 the half-precision FZ16 bit is switched with it.
func SetFlushToZero(on bool) {
	mask := uint64(fpcrFZ)
	if TestFeature(catalog.A64FullFP16) {
		mask |= fpcrFZ16
	}
	fpcr := getFPCR()
	if on {
		fpcr |= mask
	} else {
		fpcr &^= mask
	}
	setFPCR(fpcr)
}

// DefaultNaN reports whether FPCR.DN is set.
func DefaultNaN() bool {
	return getFPCR()&fpcrDN != 0
}

// SetDefaultNaN sets or clears FPCR.DN.
func SetDefaultNaN(on bool) {
	fpcr := getFPCR()
	if on {
		fpcr |= fpcrDN
	} else {
		fpcr &^= fpcrDN
	}
	setFPCR(fpcr)
}
