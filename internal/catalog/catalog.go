// Package catalog is the static knowledge base of ARM microarchitectures:
// named feature bits, per-model base feature sets, backend-version
// fallback chains, and the dependency closures tying them together.
// The catalog is split into two families (AArch64 and AArch32); the
// build selects which one is Native, but both are plain data and every
// algorithm works against an explicit *Family.
package catalog

import "github.com/hartyporpoise/armdispatch/internal/features"

// CPU identifies a catalog entry. The numbering is shared between the
// two families; each family's table carries only the models that exist
// for it.
type CPU uint32

const (
	Generic CPU = iota

	// Architecture aliases.
	ArmV7A
	ArmV7M
	ArmV7EM
	ArmV7R
	ArmV8A
	ArmV8MBase
	ArmV8MMain
	ArmV8R
	ArmV81A
	ArmV82A
	ArmV83A
	ArmV84A
	ArmV85A
	ArmV86A

	// ARM Ltd, armv6.
	MPCore
	Arm1136JFS
	Arm1156T2FS
	Arm1176JZFS
	CortexM0
	CortexM1
	// armv7ml
	CortexM3
	CortexM4
	CortexM7
	// armv7l
	CortexA5
	CortexA7
	CortexA8
	CortexA9
	CortexA12
	CortexA15
	CortexA17
	CortexR4
	CortexR5
	CortexR7
	CortexR8
	// armv8ml
	CortexM23
	CortexM33
	// armv8l
	CortexA32
	CortexR52
	// aarch64
	CortexA34
	CortexA35
	CortexA53
	CortexA55
	CortexA57
	CortexA65
	CortexA65AE
	CortexA72
	CortexA73
	CortexA75
	CortexA76
	CortexA76AE
	CortexA77
	CortexA78
	CortexX1
	NeoverseE1
	NeoverseN1
	NeoverseV1
	NeoverseN2

	// Cavium / Marvell.
	ThunderX
	ThunderX88
	ThunderX88P1
	ThunderX81
	ThunderX83
	ThunderX2T99
	ThunderX2T99P1
	OcteonTX2
	OcteonTX2T98
	OcteonTX2T96
	OcteonTX2F95
	OcteonTX2F95N
	OcteonTX2F95MM
	ThunderX3T110

	// Fujitsu.
	A64FX

	// HiSilicon.
	TSV110

	// Huaxintong.
	Phecda

	// NVIDIA.
	Denver1
	Denver2
	Carmel

	// AppliedMicro.
	XGene1
	XGene2
	XGene3

	// Qualcomm.
	Scorpion
	Krait
	Kyro
	Falkor
	Saphira

	// Samsung.
	ExynosM1
	ExynosM2
	ExynosM3
	ExynosM4
	ExynosM5

	// Apple.
	AppleSwift
	AppleA7
	AppleA8
	AppleA9
	AppleA10
	AppleA11
	AppleA12
	AppleA13
	AppleA14
	AppleA15
	AppleA16
	AppleA17
	AppleM1
	AppleM2
	AppleM3
	AppleM4
	AppleS4
	AppleS5

	// Marvell, armv7l.
	PJ4

	// Intel, armv7l.
	Intel3735D
)

// neverBackend marks catalog rows no released backend accepts yet; the
// fallback chain is always taken for them.
const neverBackend = ^uint32(0)

// Spec is one CPU catalog row.
type Spec struct {
	// Name is the canonical model name ("cortex-a76", "apple-m2").
	Name string

	// ID identifies the model.
	ID CPU

	// Fallback is the model substituted when the active backend is
	// older than MinBackend. Chains terminate at a model with
	// MinBackend zero.
	Fallback CPU

	// MinBackend is the lowest backend version that knows this model
	// by name.
	MinBackend uint32

	// Features is the model's base feature set, before dependency
	// closure.
	Features features.List
}

// Arch is an architecture version plus profile ('A', 'R', 'M', or 0
// when the profile is unknown).
type Arch struct {
	Version int
	Profile byte
}

// MClass reports whether the profile is the microcontroller one.
func (a Arch) MClass() bool { return a.Profile == 'M' }

// Family bundles one architecture family's static tables.
type Family struct {
	// AArch64 reports whether this family describes 64-bit cores.
	AArch64 bool

	// Features lists every named bit in ascending bit order.
	Features []features.Name

	// Deps is the dependency edge list used by both closures. The
	// architectural ladders live in archEnable instead; they are not
	// expressible as single edges.
	Deps []features.Dep

	// CPUs is the closed model catalog.
	CPUs []Spec

	// Mask covers every named bit, nominal ones included.
	Mask features.List

	// RealMask covers only machine feature bits; the top word carries
	// nominal-only markers and is zero here.
	RealMask features.List

	archEnable func(*features.List)
}

// FindCPUByName returns the row named name, or nil.
func (f *Family) FindCPUByName(name string) *Spec {
	for i := range f.CPUs {
		if f.CPUs[i].Name == name {
			return &f.CPUs[i]
		}
	}
	return nil
}

// FindCPU returns the row for id, or nil when the id does not exist in
// this family (e.g. an AArch64 model looked up in the AArch32 table).
func (f *Family) FindCPU(id CPU) *Spec {
	for i := range f.CPUs {
		if f.CPUs[i].ID == id {
			return &f.CPUs[i]
		}
	}
	return nil
}

// CPUName returns the canonical name for id, falling back to "generic"
// for ids unknown to this family.
func (f *Family) CPUName(id CPU) string {
	if s := f.FindCPU(id); s != nil {
		return s.Name
	}
	return "generic"
}

// FindFeatureBit returns the bit id for a feature name, or
// features.NotFound.
func (f *Family) FindFeatureBit(name string) uint32 {
	return features.FindBit(f.Features, name)
}

// EnableDepends closes l upward: architectural ladders first, then the
// edge list to a fixpoint.
func (f *Family) EnableDepends(l *features.List) {
	f.archEnable(l)
	features.EnableDepends(l, f.Deps)
}

// DisableDepends closes l downward over the edge list. The ladders are
// deliberately not inverted here; version marks stay put and the
// emitter re-derives alias flags from them.
func (f *Family) DisableDepends(l *features.List) {
	features.DisableDepends(l, f.Deps)
}

// IsGeneric reports whether id names an architecture alias rather than
// a specific microarchitecture.
func IsGeneric(id CPU) bool {
	switch id {
	case Generic, ArmV7A, ArmV7M, ArmV7EM, ArmV7R,
		ArmV8A, ArmV8MBase, ArmV8MMain, ArmV8R,
		ArmV81A, ArmV82A, ArmV83A, ArmV84A, ArmV85A, ArmV86A:
		return true
	}
	return false
}

// NormalizeName maps historical backend spellings to catalog names.
// It is idempotent; unknown names pass through unchanged.
func NormalizeName(name string) string {
	switch name {
	case "ares":
		return "neoverse-n1"
	case "zeus":
		return "neoverse-v1"
	case "cyclone":
		return "apple-a7"
	case "typhoon":
		return "apple-a8"
	case "twister":
		return "apple-a9"
	case "hurricane":
		return "apple-a10"
	}
	return name
}
