package dispatch

import (
	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"github.com/hartyporpoise/armdispatch/internal/features"
)

// resolveTarget combines a parsed target with the catalog's base
// features and the dependency closures. With requireHost set the
// result is additionally clamped to what the running machine has.
func (d *Dispatcher) resolveTarget(t Target, requireHost bool) Target {
	res := t
	var cpuFeatures *features.List
	if res.Name == "native" {
		res.Name = d.hostName()
		h := d.host()
		cpuFeatures = &h.Features
	} else if spec := d.fam.FindCPUByName(res.Name); spec != nil {
		cpuFeatures = &spec.Features
	} else {
		res.Enable.Flags |= UnknownName
	}
	if cpuFeatures != nil {
		res.Enable.Features = res.Enable.Features.Union(*cpuFeatures)
	}
	d.fam.EnableDepends(&res.Enable.Features)
	res.Enable.Features = res.Enable.Features.AndNot(res.Disable.Features)
	if requireHost {
		res.Enable.Features = res.Enable.Features.Intersect(d.host().Features)
	}
	d.fam.DisableDepends(&res.Enable.Features)
	if cpuFeatures != nil {
		// The base is known, so make the negative facts explicit for
		// the backend.
		res.Disable.Features = d.fam.RealMask.AndNot(res.Enable.Features)
	}
	return res
}

// EnsureJITTargets parses, validates, and resolves the command-line
// targets if the JIT target list has not been established yet. Only
// the first target is clamped to the host; the rest describe image
// variants that may exceed it.
func (d *Dispatcher) EnsureJITTargets(cpuTarget string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ensureLocked(cpuTarget)
}

func (d *Dispatcher) ensureLocked(cpuTarget string) error {
	if len(d.jit) > 0 {
		return nil
	}
	ts, err := ParseTargets(d.fam, cpuTarget)
	if err != nil {
		return err
	}
	if err := CheckTargets(ts); err != nil {
		return err
	}
	for i := range ts {
		ts[i] = d.resolveTarget(ts[i], i == 0)
	}
	computeCloneFlags(d.fam, ts)
	d.jit = ts
	return nil
}

// computeCloneFlags decides, for every non-first target that is not
// already cloning everything, which function classes the compiler must
// multi-version. The decision compares the target against its base
// target's features.
func computeCloneFlags(fam *catalog.Family, ts []Target) {
	for i := 1; i < len(ts); i++ {
		t := &ts[i]
		if t.Enable.Flags&CloneAll != 0 {
			continue
		}
		base := ts[t.Base].Enable.Features
		// Code probing CPU features must see the target's answer.
		t.Enable.Flags |= CloneCPU
		// Loops are the common vectorization unit.
		t.Enable.Flags |= CloneLoop
		if fam.AArch64 {
			for _, b := range []uint32{catalog.A64FP16FML, catalog.A64FullFP16} {
				if !base.Test(b) && t.Enable.Features.Test(b) {
					t.Enable.Flags |= CloneFloat16
					break
				}
			}
		} else {
			for _, b := range []uint32{catalog.A32VFP3, catalog.A32VFP4, catalog.A32NEON} {
				if !base.Test(b) && t.Enable.Features.Test(b) {
					t.Enable.Flags |= CloneMath
					break
				}
			}
			if !base.Test(catalog.A32NEON) && t.Enable.Features.Test(catalog.A32NEON) {
				t.Enable.Flags |= CloneSIMD
			}
		}
	}
}
