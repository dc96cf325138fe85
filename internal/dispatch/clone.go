package dispatch

import (
	"errors"

	"github.com/hartyporpoise/armdispatch/internal/features"
)

// CloneSpec is one ahead-of-time image target: the backend strings to
// compile it with, its serialized descriptor for the image, and the
// clone directives.
type CloneSpec struct {
	// CPUName is the backend CPU name.
	CPUName string

	// CPUFeatures is the comma-joined backend feature string.
	CPUFeatures string

	// Data is the serialized variant descriptor embedded in the image.
	Data []byte

	// Flags is the target's directive flag word.
	Flags uint32

	// Base indexes the target this one is diffed against.
	Base int
}

// CloneTargets resolves the full command line for ahead-of-time
// imaging: every target, clone flags computed, backend-gated feature
// bits stripped from the serialized descriptors. Unlike the JIT path,
// the result is not published as process state.
func (d *Dispatcher) CloneTargets(cpuTarget string) ([]CloneSpec, error) {
	ts, err := ParseTargets(d.fam, cpuTarget)
	if err != nil {
		return nil, err
	}
	if err := CheckTargets(ts); err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, errors.New("no targets specified")
	}
	for i := range ts {
		ts[i] = d.resolveTarget(ts[i], i == 0)
	}
	computeCloneFlags(d.fam, ts)

	specs := make([]CloneSpec, 0, len(ts))
	for _, t := range ts {
		en := t.Enable.Features
		dis := t.Disable.Features
		// Features the active backend cannot name must not leak into
		// the image descriptor.
		for _, fn := range d.fam.Features {
			if fn.MinBackend > d.backend {
				en.Clear(fn.Bit)
				dis.Clear(fn.Bit)
			}
		}
		d.fam.DisableDepends(&en)

		stored := t
		stored.Enable.Features = en
		stored.Disable.Features = dis

		name, flags := d.backendStrings(t)
		specs = append(specs, CloneSpec{
			CPUName:     name,
			CPUFeatures: JoinFeatures(appendExt(flags, t.ExtFeatures)),
			Data:        EncodeTargets([]Target{stored}),
			Flags:       t.Enable.Flags,
			Base:        t.Base,
		})
	}
	return specs, nil
}

// MaxVectorSize exposes the per-arch vector register width callback
// used during image matching.
func (d *Dispatcher) MaxVectorSize(l features.List) int {
	return d.fam.MaxVectorSize(l)
}
