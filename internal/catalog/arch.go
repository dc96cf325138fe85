package catalog

import "github.com/hartyporpoise/armdispatch/internal/features"

// ArchFromMachine derives the architecture tuple from the kernel's
// machine string (uname). Unknown strings yield a zero Arch.
func ArchFromMachine(machine string) Arch {
	switch machine {
	case "armv6l":
		return Arch{Version: 6}
	case "armv7l":
		return Arch{Version: 7}
	case "armv7ml":
		return Arch{Version: 7, Profile: 'M'}
	case "armv8l", "aarch64":
		return Arch{Version: 8}
	}
	return Arch{}
}

// FeatureArch derives the architecture tuple encoded in a feature
// vector. On AArch64 it is always {8, 'A'}.
func (f *Family) FeatureArch(l features.List) Arch {
	if f.AArch64 {
		return Arch{Version: 8, Profile: 'A'}
	}
	var ver int
	switch {
	case l.Test(A32V8):
		ver = 8
	case l.Test(A32V7):
		ver = 7
	default:
		return Arch{Version: 6}
	}
	switch {
	case l.Test(A32MClass):
		return Arch{Version: ver, Profile: 'M'}
	case l.Test(A32RClass):
		return Arch{Version: ver, Profile: 'R'}
	case l.Test(A32AClass):
		return Arch{Version: ver, Profile: 'A'}
	}
	return Arch{Version: ver}
}

// CheckArch reports whether a CPU id is plausible for the detected
// architecture: the id must exist in this family, profiles must agree
// on M-class, and the model's version must reach the detected one.
func (f *Family) CheckArch(id CPU, arch Arch) bool {
	spec := f.FindCPU(id)
	if spec == nil {
		return false
	}
	featArch := f.FeatureArch(spec.Features)
	if arch.MClass() != featArch.MClass() {
		return false
	}
	return arch.Version <= featArch.Version
}

// GenericFor picks the architecture-alias CPU matching arch, used when
// no specific model survives detection.
func (f *Family) GenericFor(arch Arch) CPU {
	if f.AArch64 {
		return Generic
	}
	if arch.Version >= 8 {
		switch arch.Profile {
		case 'M':
			return ArmV8MBase
		case 'R':
			return ArmV8R
		default:
			return ArmV8A
		}
	}
	if arch.Version == 7 {
		switch arch.Profile {
		case 'M':
			return ArmV7M
		case 'R':
			return ArmV7R
		default:
			return ArmV7A
		}
	}
	return Generic
}

// MaxVectorSize returns the widest vector register, in bytes, implied
// by a feature vector.
func (f *Family) MaxVectorSize(l features.List) int {
	if f.AArch64 {
		if l.Test(A64SVE2) {
			return 256
		}
		if l.Test(A64SVE) {
			return 128
		}
		return 16
	}
	if l.Test(A32NEON) {
		return 16
	}
	return 8
}

// V8BigLittleOrder ranks the v8 Cortex-A lineage (and its derivatives)
// from little to big. Host discovery keeps only the biggest family
// member it observes. Not every member appears in both family tables.
var V8BigLittleOrder = []CPU{
	CortexA35,
	CortexA53,
	CortexA55,
	CortexA57,
	CortexA72,
	CortexA73,
	CortexA75,
	CortexA76,
	NeoverseN1,
	NeoverseN2,
	NeoverseV1,
	Denver2,
	Carmel,
	ExynosM1,
	ExynosM2,
	ExynosM3,
	ExynosM4,
	ExynosM5,
}

// V7BigLittleOrder ranks the v7 Cortex-A lineage, little to big.
var V7BigLittleOrder = []CPU{
	CortexA5,
	CortexA7,
	CortexA8,
	CortexA9,
	CortexA12,
	CortexA15,
	CortexA17,
}
