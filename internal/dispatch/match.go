package dispatch

import (
	"fmt"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"github.com/hartyporpoise/armdispatch/internal/features"
)

// NoMatch is the sentinel variant index reported when no image variant
// is compatible with the JIT target.
const NoMatch = ^uint32(0)

// Match is the outcome of scoring image variants against a JIT target.
type Match struct {
	// BestIdx is the chosen variant, or NoMatch.
	BestIdx uint32

	// VRegSize is the chosen variant's vector register size in bytes.
	VRegSize int

	// Reason explains a NoMatch outcome; empty on success.
	Reason string
}

// matchTargets picks the best-scoring variant the JIT target can run:
// a variant is compatible when every feature it was compiled for is
// present on the target, and among compatible variants the one using
// the most features wins (earliest wins ties).
func matchTargets(fam *catalog.Family, variants []Target, jit Target, maxVec func(features.List) int) Match {
	best := -1
	bestScore := -1
	reason := "no image targets to match"
	for i, v := range variants {
		missing := v.Enable.Features.AndNot(jit.Enable.Features)
		if !missing.IsZero() {
			if best < 0 {
				reason = fmt.Sprintf("image target %q requires feature %s not available on this target",
					v.Name, featureName(fam, missing))
			}
			continue
		}
		score := v.Enable.Features.Count()
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return Match{BestIdx: NoMatch, Reason: reason}
	}
	return Match{BestIdx: uint32(best), VRegSize: maxVec(variants[best].Enable.Features)}
}

// featureName names the lowest named bit set in l for diagnostics; an
// unnamed bit is reported by number only when no named bit is set.
func featureName(fam *catalog.Family, l features.List) string {
	for _, fn := range fam.Features {
		if l.Test(fn.Bit) {
			return fn.Name
		}
	}
	for bit := uint32(0); bit < 32*features.Words; bit++ {
		if l.Test(bit) {
			return fmt.Sprintf("#%d", bit)
		}
	}
	return "?"
}

// InitSysimg establishes the JIT target from the command line, matches
// it against the system image's variants, and publishes the (possibly
// adjusted) target. Calling it twice is an init-order violation. A
// failed match is not an error: it reports NoMatch plus the rejection
// reason, and publishes nothing.
func (d *Dispatcher) InitSysimg(image []byte, cpuTarget string) (Match, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.jit) > 0 {
		return Match{}, ErrAlreadyInitialized
	}
	cmdline, err := ParseTargets(d.fam, cpuTarget)
	if err != nil {
		return Match{}, err
	}
	if err := CheckTargets(cmdline); err != nil {
		return Match{}, err
	}
	target := d.resolveTarget(cmdline[0], true)

	variants, err := DecodeTargets(image)
	if err != nil {
		return Match{}, err
	}
	for i := range variants {
		variants[i].Name = catalog.NormalizeName(variants[i].Name)
	}
	m := matchTargets(d.fam, variants, target, d.fam.MaxVectorSize)
	if m.BestIdx == NoMatch {
		return m, nil
	}
	// The chosen variant passes vectors in registers: if its register
	// size differs from ours, stop using vector calls ourselves so
	// caller and callee agree on the ABI.
	if m.VRegSize != d.fam.MaxVectorSize(target.Enable.Features) &&
		variants[m.BestIdx].Enable.Flags&VecCall != 0 {
		if !d.fam.AArch64 {
			target.Enable.Features.Clear(catalog.A32NEON)
		}
	}
	d.jit = append(d.jit, target)
	return m, nil
}

// InitPkgimg matches a package image against the already-published JIT
// target. It requires sysimg initialization to have happened and
// exactly one JIT target.
func (d *Dispatcher) InitPkgimg(image []byte) (Match, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.jit) == 0 {
		return Match{}, ErrNotInitialized
	}
	if len(d.jit) > 1 {
		return Match{}, ErrTooManyTargets
	}
	target := d.jit[0]

	variants, err := DecodeTargets(image)
	if err != nil {
		return Match{}, err
	}
	for i := range variants {
		variants[i].Name = catalog.NormalizeName(variants[i].Name)
	}
	return matchTargets(d.fam, variants, target, d.fam.MaxVectorSize), nil
}
