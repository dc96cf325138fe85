package catalog

// CPUID is one core's identification register fields, from MIDR_EL1 or
// /proc/cpuinfo.
type CPUID struct {
	Implementer uint8
	Variant     uint8
	Part        uint16
}

// Less orders CPUIDs lexicographically by (implementer, part, variant).
func (c CPUID) Less(o CPUID) bool {
	if c.Implementer != o.Implementer {
		return c.Implementer < o.Implementer
	}
	if c.Part != o.Part {
		return c.Part < o.Part
	}
	return c.Variant < o.Variant
}

// LookupCPUID maps a CPUID to a catalog CPU id. Unknown combinations
// map to Generic. A few rows need the variant to disambiguate (Cavium
// ThunderX88 pass 1, Samsung Exynos M1/M2).
func LookupCPUID(id CPUID) CPU {
	switch id.Implementer {
	case 0x41: // 'A': ARM
		switch id.Part {
		case 0xb02:
			return MPCore
		case 0xb36:
			return Arm1136JFS
		case 0xb56:
			return Arm1156T2FS
		case 0xb76:
			return Arm1176JZFS
		case 0xc05:
			return CortexA5
		case 0xc07:
			return CortexA7
		case 0xc08:
			return CortexA8
		case 0xc09:
			return CortexA9
		case 0xc0d:
			return CortexA12
		case 0xc0f:
			return CortexA15
		case 0xc0e:
			return CortexA17
		case 0xc14:
			return CortexR4
		case 0xc15:
			return CortexR5
		case 0xc17:
			return CortexR7
		case 0xc18:
			return CortexR8
		case 0xc20:
			return CortexM0
		case 0xc21:
			return CortexM1
		case 0xc23:
			return CortexM3
		case 0xc24:
			return CortexM4
		case 0xc27:
			return CortexM7
		case 0xd01:
			return CortexA32
		case 0xd02:
			return CortexA34
		case 0xd03:
			return CortexA53
		case 0xd04:
			return CortexA35
		case 0xd05:
			return CortexA55
		case 0xd06:
			return CortexA65
		case 0xd07:
			return CortexA57
		case 0xd08:
			return CortexA72
		case 0xd09:
			return CortexA73
		case 0xd0a:
			return CortexA75
		case 0xd0b:
			return CortexA76
		case 0xd0c:
			return NeoverseN1
		case 0xd0d:
			return CortexA77
		case 0xd0e:
			return CortexA76AE
		case 0xd13:
			return CortexR52
		case 0xd20:
			return CortexM23
		case 0xd21:
			return CortexM33
		case 0xd40:
			return NeoverseV1
		case 0xd41:
			return CortexA78
		case 0xd43:
			return CortexA65AE
		case 0xd44:
			return CortexX1
		case 0xd49:
			return NeoverseN2
		case 0xd4a:
			return NeoverseE1
		}
	case 0x42: // 'B': Broadcom (Cavium)
		if id.Part == 0x516 {
			return ThunderX2T99P1
		}
	case 0x43: // 'C': Cavium
		switch id.Part {
		case 0xa0:
			return ThunderX
		case 0xa1:
			if id.Variant == 0 {
				return ThunderX88P1
			}
			return ThunderX88
		case 0xa2:
			return ThunderX81
		case 0xa3:
			return ThunderX83
		case 0xaf:
			return ThunderX2T99
		case 0xb0:
			return OcteonTX2
		case 0xb1:
			return OcteonTX2T98
		case 0xb2:
			return OcteonTX2T96
		case 0xb3:
			return OcteonTX2F95
		case 0xb4:
			return OcteonTX2F95N
		case 0xb5:
			return OcteonTX2F95MM
		case 0xb8:
			return ThunderX3T110
		}
	case 0x46: // 'F': Fujitsu
		if id.Part == 0x1 {
			return A64FX
		}
	case 0x48: // 'H': HiSilicon
		switch id.Part {
		case 0xd01:
			return TSV110
		case 0xd40: // Kirin 980
			return CortexA76
		}
	case 0x4e: // 'N': NVIDIA
		switch id.Part {
		case 0x000:
			return Denver1
		case 0x003:
			return Denver2
		case 0x004:
			return Carmel
		}
	case 0x50: // 'P': AppliedMicro
		if id.Part == 0x000 {
			return XGene1
		}
	case 0x51: // 'Q': Qualcomm
		switch id.Part {
		case 0x00f, 0x02d:
			return Scorpion
		case 0x04d, 0x06f:
			return Krait
		case 0x201, 0x205, 0x211:
			return Kyro
		case 0x800: // kryo 2xx gold
			return CortexA73
		case 0x801: // kryo 2xx silver
			return CortexA53
		case 0x802: // kryo 3xx gold
			return CortexA75
		case 0x803: // kryo 3xx silver
			return CortexA55
		case 0x804: // kryo 4xx gold
			return CortexA76
		case 0x805: // kryo 4xx silver
			return CortexA55
		case 0xc00:
			return Falkor
		case 0xc01:
			return Saphira
		}
	case 0x53: // 'S': Samsung
		if id.Part == 1 {
			if id.Variant == 4 {
				return ExynosM2
			}
			return ExynosM1
		}
		if id.Variant != 1 {
			return Generic
		}
		switch id.Part {
		case 0x2:
			return ExynosM3
		case 0x3:
			return ExynosM4
		case 0x4:
			return ExynosM5
		}
	case 0x56: // 'V': Marvell
		switch id.Part {
		case 0x581, 0x584:
			return PJ4
		}
	case 0x61: // 'a': Apple
		// Part numbers per Apple's cpuid.h and the Asahi SoC codename
		// list; e-core and p-core parts of one SoC map to one model.
		switch id.Part {
		case 0x0: // Swift
			return AppleSwift
		case 0x1: // Cyclone
			return AppleA7
		case 0x2, 0x3: // Typhoon / Capri
			return AppleA8
		case 0x4, 0x5: // Twister / Elba / Malta
			return AppleA9
		case 0x6, 0x7: // Hurricane / Myst
			return AppleA10
		case 0x8, 0x9: // Monsoon / Mistral
			return AppleA11
		case 0xb, 0xc, 0x10, 0x11: // Vortex / Tempest, A12X
			return AppleA12
		case 0xf: // Tempest M9
			return AppleS4
		case 0x12, 0x13: // Lightning / Thunder
			return AppleA13
		case 0x20, 0x21: // Icestorm / Firestorm
			return AppleA14
		case 0x22, 0x23, 0x24, 0x25, 0x28, 0x29: // M1, M1 Pro, M1 Max/Ultra
			return AppleM1
		case 0x30, 0x31: // Blizzard / Avalanche
			return AppleA15
		case 0x32, 0x33, 0x34, 0x35, 0x38, 0x39: // M2, M2 Pro, M2 Max/Ultra
			return AppleM2
		case 0x40, 0x41: // Sawtooth / Everest
			return AppleA16
		case 0x42, 0x43, 0x44, 0x45, 0x48, 0x49: // M3, M3 Pro, M3 Max
			return AppleM3
		case 0x50, 0x51: // A17 Pro
			return AppleA17
		case 0x52, 0x53, 0x54, 0x55, 0x58, 0x59: // M4, M4 Pro, M4 Max
			return AppleM4
		}
	case 0x68: // 'h': Huaxintong
		if id.Part == 0x0 {
			return Phecda
		}
	case 0x69: // 'i': Intel
		if id.Part == 0x001 {
			return Intel3735D
		}
	}
	return Generic
}
