// Package hostcpu discovers which CPU model and instruction-set
// features the running machine actually has. Discovery is best-effort:
// a missing file or an empty auxiliary vector shrinks the detected
// feature set, it never fails. The result is computed once, on first
// use, and frozen for the life of the process.
package hostcpu

import (
	"sync"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"github.com/hartyporpoise/armdispatch/internal/features"
)

// Info is the frozen discovery result.
type Info struct {
	// CPU is the detected model, or an architecture alias when no
	// specific model could be identified.
	CPU catalog.CPU

	// Features is the detected feature vector, masked to the named
	// bits of the native family.
	Features features.List
}

// hostOnce performs discovery exactly once; concurrent first callers
// block until the single evaluation publishes, later callers read the
// frozen value without locking.
var hostOnce = sync.OnceValue(func() Info {
	return platformDetect()
})

// Get returns the host CPU id and feature vector.
func Get() Info { return hostOnce() }

// nameProbe, when set, overrides the catalog name for generic host CPU
// ids with a name obtained from the compiler backend.
var nameProbe func() string

// SetBackendNameProbe registers a backend host-name query consulted
// when discovery lands on a generic CPU id. Must be called before the
// first Name call.
func SetBackendNameProbe(probe func() string) { nameProbe = probe }

var nameOnce = sync.OnceValue(func() string {
	host := Get()
	if catalog.IsGeneric(host.CPU) && nameProbe != nil {
		if n := nameProbe(); n != "" && n != "generic" {
			return n
		}
	}
	return catalog.Native.CPUName(host.CPU)
})

// Name returns the host CPU's canonical name.
func Name() string { return nameOnce() }

// TestFeature reports whether the host has the given feature bit.
// Out-of-range bits are absent, never a crash.
func TestFeature(bit uint32) bool {
	return Get().Features.Test(bit)
}

// cpuidPair keeps the raw CPUID next to the model it decoded to, in
// observation order.
type cpuidPair struct {
	cpu catalog.CPU
	id  catalog.CPUID
}

// detect fuses the auxiliary vector, per-core CPUIDs, and the
// architecture tuple into a (model, features) pair. It is pure given
// its inputs so tests can feed synthetic data.
func detect(fam *catalog.Family, arch catalog.Arch, hwcap, hwcap2 uint32, ids []catalog.CPUID) Info {
	var feats features.List
	feats[0] = hwcap
	feats[1] = hwcap2
	if fam.AArch64 && feats.Test(31) {
		// HWCAP bit 31 is PACG; surface it as the pauth feature.
		feats.Set(catalog.A64PAuth)
	}
	if !fam.AArch64 && arch.Version >= 7 {
		switch arch.Profile {
		case 'M':
			feats.Set(catalog.A32MClass)
		case 'R':
			feats.Set(catalog.A32RClass)
		case 'A':
			feats.Set(catalog.A32AClass)
		}
		if arch.Version >= 8 {
			feats.Set(catalog.A32V8)
		}
		feats.Set(catalog.A32V7)
	}

	// The kernel does not expose every feature we care about (and none
	// of the nominal version marks), so augment HWCAP with the catalog
	// sets of the cores we recognize. Cores can be paired with
	// different feature sets (exynos-m3 + cortex-a55 has been
	// observed), so intersect across cores to keep only what every
	// core has. An unrecognized core resets the extras to empty.
	var extra features.List
	extraInit := false
	seen := make(map[catalog.CPU]bool)
	var list []cpuidPair
	for _, id := range ids {
		cpu := catalog.LookupCPUID(id)
		if cpu == catalog.Generic {
			if extraInit {
				extra = features.List{}
			}
			extraInit = true
			continue
		}
		if !fam.CheckArch(cpu, arch) {
			continue
		}
		if seen[cpu] {
			continue
		}
		seen[cpu] = true
		spec := fam.FindCPU(cpu)
		if extraInit {
			extra = extra.Intersect(spec.Features)
		} else {
			extraInit = true
			extra = spec.Features
		}
		list = append(list, cpuidPair{cpu, id})
	}
	feats = feats.Union(extra)

	list = shrinkBigLittle(list, catalog.V8BigLittleOrder)
	if !fam.AArch64 {
		list = shrinkBigLittle(list, catalog.V7BigLittleOrder)
	}

	cpu := catalog.Generic
	if len(list) == 0 {
		cpu = fam.GenericFor(arch)
	} else {
		// More than one survivor means an unrecognized big.LITTLE
		// combination; which one wins is unspecified, take the first
		// in observation order.
		cpu = list[0].cpu
	}

	feats = feats.Intersect(fam.Mask)
	return Info{CPU: cpu, Features: feats}
}

// shrinkBigLittle finds the highest-ranked member of order present in
// list and drops every lower-ranked member, so a big.LITTLE pair
// reports its big core. Entries outside order are kept.
func shrinkBigLittle(list []cpuidPair, order []catalog.CPU) []cpuidPair {
	rank := func(cpu catalog.CPU) int {
		for i, c := range order {
			if c == cpu {
				return i
			}
		}
		return -1
	}
	maxIdx := -1
	for _, e := range list {
		if r := rank(e.cpu); r > maxIdx {
			maxIdx = r
		}
	}
	if maxIdx < 0 {
		return list
	}
	kept := list[:0]
	for _, e := range list {
		if r := rank(e.cpu); r == -1 || r >= maxIdx {
			kept = append(kept, e)
		}
	}
	return kept
}
