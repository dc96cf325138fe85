package catalog

import "github.com/hartyporpoise/armdispatch/internal/features"

// AArch32 feature bits. Word 0 mirrors the 32-bit kernel's HWCAP
// (arch/arm/include/uapi/asm/hwcap.h), word 1 its HWCAP2. Word 2 is
// nominal: profile class, architecture versions, and the
// single-precision-only VFPv4 marker no kernel reports directly.
const (
	A32VFP2     = 6
	A32EDSP     = 7
	A32NEON     = 12
	A32VFP3     = 13
	A32VFP4     = 16
	A32HWDivARM = 17
	A32HWDiv    = 18
	A32D32      = 19

	A32Crypto = 32 + 0
	A32CRC    = 32 + 4

	A32AClass  = 64 + 0
	A32RClass  = 64 + 1
	A32MClass  = 64 + 2
	A32V7      = 64 + 3
	A32V8      = 64 + 4
	A32V81A    = 64 + 5
	A32V82A    = 64 + 6
	A32V83A    = 64 + 7
	A32V84A    = 64 + 8
	A32V85A    = 64 + 9
	A32V86A    = 64 + 10
	A32V8MMain = 64 + 11
	A32VFP4SP  = 64 + 12
)

var aarch32Features = []features.Name{
	{Name: "vfp2", Bit: A32VFP2},
	{Name: "edsp", Bit: A32EDSP},
	{Name: "neon", Bit: A32NEON},
	{Name: "vfp3", Bit: A32VFP3},
	{Name: "vfp4", Bit: A32VFP4},
	{Name: "hwdiv-arm", Bit: A32HWDivARM},
	{Name: "hwdiv", Bit: A32HWDiv},
	{Name: "d32", Bit: A32D32},
	{Name: "crypto", Bit: A32Crypto},
	{Name: "crc", Bit: A32CRC},
	{Name: "aclass", Bit: A32AClass},
	{Name: "rclass", Bit: A32RClass},
	{Name: "mclass", Bit: A32MClass},
	{Name: "v7", Bit: A32V7},
	{Name: "v8", Bit: A32V8},
	{Name: "v8.1a", Bit: A32V81A},
	{Name: "v8.2a", Bit: A32V82A},
	{Name: "v8.3a", Bit: A32V83A, MinBackend: 60000},
	{Name: "v8.4a", Bit: A32V84A, MinBackend: 70000},
	{Name: "v8.5a", Bit: A32V85A, MinBackend: 80000},
	{Name: "v8.6a", Bit: A32V86A, MinBackend: 110000},
	{Name: "v8m.main", Bit: A32V8MMain},
	{Name: "vfp4sp", Bit: A32VFP4SP},
}

var aarch32Deps = []features.Dep{
	{Bit: A32NEON, Requires: A32VFP3},
	{Bit: A32VFP4, Requires: A32VFP3},
	{Bit: A32Crypto, Requires: A32NEON},
}

// enableArchAArch32 applies the version ladder plus the profile and
// version implications the 32-bit backend models as features.
func enableArchAArch32(l *features.List) {
	if l.Test(A32V86A) {
		l.Set(A32V85A)
	}
	if l.Test(A32V85A) {
		l.Set(A32V84A)
	}
	if l.Test(A32V84A) {
		l.Set(A32V83A)
	}
	if l.Test(A32V83A) {
		l.Set(A32V82A)
	}
	if l.Test(A32V82A) {
		l.Set(A32V81A)
	}
	if l.Test(A32V81A) {
		l.Set(A32CRC)
		l.Set(A32V8)
		l.Set(A32AClass)
	}
	if l.Test(A32V8MMain) {
		l.Set(A32V8)
		l.Set(A32MClass)
	}
	if l.Test(A32V8) {
		l.Set(A32V7)
		if l.Test(A32AClass) {
			l.Set(A32NEON)
			l.Set(A32VFP3)
			l.Set(A32VFP4)
			l.Set(A32HWDivARM)
			l.Set(A32HWDiv)
			l.Set(A32D32)
		}
	}
}

// Real base requirements of the specific architectures.
var (
	a32ArmV7M = fm(A32V7, A32MClass, A32HWDiv)
	a32ArmV7A = fm(A32V7, A32AClass)
	a32ArmV7R = fm(A32V7, A32RClass)
	a32ArmV8M = fm(A32V7, A32V8, A32MClass, A32HWDiv)
	a32ArmV8A = fm(A32V7, A32V8, A32AClass, A32NEON, A32VFP3, A32VFP4, A32D32, A32HWDiv, A32HWDivARM)
	a32ArmV8R = fm(A32V7, A32V8, A32RClass, A32NEON, A32VFP3, A32VFP4, A32D32, A32HWDiv, A32HWDivARM)

	a32Generic = fm()

	// armv7l
	a32CortexA7  = a32ArmV7A.Union(fm(A32VFP3, A32VFP4, A32NEON))
	a32CortexA8  = a32ArmV7A.Union(fm(A32D32, A32VFP3, A32NEON))
	a32CortexA12 = a32ArmV7A.Union(fm(A32D32, A32VFP3, A32VFP4, A32NEON))
	a32CortexR4  = a32ArmV7R.Union(fm(A32VFP3, A32HWDiv))
	a32CortexR5  = a32ArmV7R.Union(fm(A32VFP3, A32HWDiv, A32HWDivARM))
	a32Scorpion  = a32ArmV7A.Union(fm(A32VFP3, A32NEON))
	a32Krait     = a32ArmV7A.Union(fm(A32VFP3, A32VFP4, A32NEON, A32HWDiv, A32HWDivARM))
	a32Swift     = a32ArmV7A.Union(fm(A32D32, A32VFP3, A32VFP4, A32NEON, A32HWDiv, A32HWDivARM))
	a32PJ4       = a32ArmV7A.Union(fm(A32VFP3))
	a32Intel     = a32ArmV7A.Union(fm(A32VFP3, A32NEON))

	// armv8ml
	a32CortexM33 = a32ArmV8M.Union(fm(A32V8MMain))

	// armv8l
	a32V8CRC       = a32ArmV8A.Union(fm(A32CRC))
	a32V81A        = a32V8CRC.Union(fm(A32V81A))
	a32V82A        = a32V81A.Union(fm(A32V82A))
	a32V8CRCCrypto = a32V8CRC.Union(fm(A32Crypto))
	a32V82ACrypto  = a32V82A.Union(fm(A32Crypto))
	a32V83A        = a32V82A.Union(fm(A32V83A))
	a32V83ACrypto  = a32V83A.Union(fm(A32Crypto))
	a32V84A        = a32V83A.Union(fm(A32V84A))
	a32V85A        = a32V84A.Union(fm(A32V85A))
	a32V86A        = a32V85A.Union(fm(A32V86A))
)

var aarch32CPUs = []Spec{
	{"generic", Generic, Generic, 0, a32Generic},
	// armv6
	{"mpcore", MPCore, Generic, 0, a32Generic},
	{"arm1136jf-s", Arm1136JFS, Generic, 0, a32Generic},
	{"arm1156t2f-s", Arm1156T2FS, Generic, 0, a32Generic},
	{"arm1176jzf-s", Arm1176JZFS, Generic, 0, a32Generic},
	{"cortex-m0", CortexM0, Generic, 0, a32Generic},
	{"cortex-m1", CortexM1, Generic, 0, a32Generic},
	// armv7ml
	{"armv7-m", ArmV7M, Generic, 0, a32ArmV7M},
	{"armv7e-m", ArmV7EM, Generic, 0, a32ArmV7M},
	{"cortex-m3", CortexM3, Generic, 0, a32ArmV7M},
	{"cortex-m4", CortexM4, Generic, 0, a32ArmV7M},
	{"cortex-m7", CortexM7, Generic, 0, a32ArmV7M},
	// armv7l
	{"armv7-a", ArmV7A, Generic, 0, a32ArmV7A},
	{"armv7-r", ArmV7R, Generic, 0, a32ArmV7R},
	{"cortex-a5", CortexA5, Generic, 0, a32ArmV7A},
	{"cortex-a7", CortexA7, Generic, 0, a32CortexA7},
	{"cortex-a8", CortexA8, Generic, 0, a32CortexA8},
	{"cortex-a9", CortexA9, Generic, 0, a32ArmV7A},
	{"cortex-a12", CortexA12, Generic, 0, a32CortexA12},
	{"cortex-a15", CortexA15, Generic, 0, a32CortexA12},
	{"cortex-a17", CortexA17, Generic, 0, a32CortexA12},
	{"cortex-r4", CortexR4, Generic, 0, a32CortexR4},
	{"cortex-r5", CortexR5, Generic, 0, a32CortexR5},
	{"cortex-r7", CortexR7, Generic, 0, a32CortexR5},
	{"cortex-r8", CortexR8, Generic, 0, a32CortexR5},
	{"scorpion", Scorpion, ArmV7A, neverBackend, a32Scorpion},
	{"krait", Krait, Generic, 0, a32Krait},
	{"swift", AppleSwift, Generic, 0, a32Swift},
	{"pj4", PJ4, ArmV7A, neverBackend, a32PJ4},
	{"3735d", Intel3735D, ArmV7A, neverBackend, a32Intel},
	// armv8ml
	{"armv8-m.base", ArmV8MBase, Generic, 0, a32ArmV8M},
	{"armv8-m.main", ArmV8MMain, Generic, 0, a32ArmV8M},
	{"cortex-m23", CortexM23, ArmV8MBase, 0, a32ArmV8M},
	{"cortex-m33", CortexM33, ArmV8MMain, 0, a32CortexM33},
	// armv8l
	{"armv8-a", ArmV8A, Generic, 0, a32ArmV8A},
	{"armv8-r", ArmV8R, Generic, 0, a32ArmV8R},
	{"armv8.1-a", ArmV81A, Generic, 0, a32V81A},
	{"armv8.2-a", ArmV82A, Generic, 0, a32V82A},
	{"armv8.3-a", ArmV83A, Generic, 0, a32V83A},
	{"armv8.4-a", ArmV84A, Generic, 0, a32V84A},
	{"armv8.5-a", ArmV85A, Generic, 0, a32V85A},
	{"armv8.6-a", ArmV86A, Generic, 0, a32V86A},
	{"cortex-a32", CortexA32, Generic, 0, a32V8CRC},
	{"cortex-r52", CortexR52, Generic, 0, a32V8CRC},
	{"cortex-a35", CortexA35, Generic, 0, a32V8CRC},
	{"cortex-a53", CortexA53, Generic, 0, a32V8CRC},
	{"cortex-a55", CortexA55, Generic, 0, a32V82A},
	{"cortex-a57", CortexA57, Generic, 0, a32V8CRC},
	{"cortex-a72", CortexA72, Generic, 0, a32V8CRC},
	{"cortex-a73", CortexA73, Generic, 0, a32V8CRC},
	{"cortex-a75", CortexA75, Generic, 0, a32V82A},
	{"cortex-a76", CortexA76, Generic, 0, a32V82A},
	{"cortex-a76ae", CortexA76AE, Generic, 0, a32V82A},
	{"cortex-a77", CortexA77, CortexA76, 110000, a32V82A},
	{"cortex-a78", CortexA78, CortexA77, 110000, a32V82A},
	{"cortex-x1", CortexX1, CortexA78, 110000, a32V82A},
	{"neoverse-n1", NeoverseN1, CortexA76, 100000, a32V82A},
	{"neoverse-v1", NeoverseV1, NeoverseN1, neverBackend, a32V84A},
	{"neoverse-n2", NeoverseN2, NeoverseN1, neverBackend, a32V85A},
	{"denver1", Denver1, CortexA53, neverBackend, a32ArmV8A},
	{"denver2", Denver2, CortexA57, neverBackend, a32V8CRCCrypto},
	{"xgene1", XGene1, ArmV8A, neverBackend, a32ArmV8A},
	{"xgene2", XGene2, ArmV8A, neverBackend, a32ArmV8A},
	{"xgene3", XGene3, ArmV8A, neverBackend, a32ArmV8A},
	{"kyro", Kyro, ArmV8A, neverBackend, a32V8CRCCrypto},
	{"falkor", Falkor, ArmV8A, neverBackend, a32V8CRCCrypto},
	{"saphira", Saphira, ArmV8A, neverBackend, a32V83ACrypto},
	{"exynos-m1", ExynosM1, Generic, neverBackend, a32V8CRCCrypto},
	{"exynos-m2", ExynosM2, Generic, neverBackend, a32V8CRCCrypto},
	{"exynos-m3", ExynosM3, Generic, 0, a32V8CRCCrypto},
	{"exynos-m4", ExynosM4, Generic, 0, a32V82ACrypto},
	{"exynos-m5", ExynosM5, ExynosM4, 110000, a32V82ACrypto},
	{"apple-a7", AppleA7, Generic, 0, a32V8CRCCrypto},
}

// AArch32 is the 32-bit family catalog.
var AArch32 = &Family{
	AArch64:    false,
	Features:   aarch32Features,
	Deps:       aarch32Deps,
	CPUs:       aarch32CPUs,
	Mask:       maskOf(aarch32Features),
	RealMask:   maskOf(aarch32Features).Intersect(features.List{^uint32(0), ^uint32(0), 0}),
	archEnable: enableArchAArch32,
}
