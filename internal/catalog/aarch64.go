package catalog

import "github.com/hartyporpoise/armdispatch/internal/features"

// AArch64 feature bits. Words 0 and 1 mirror the kernel's HWCAP and
// HWCAP2 bit positions (arch/arm64/include/uapi/asm/hwcap.h) so that
// auxval words can be copied into the vector directly. Word 2 holds
// the nominal architecture-version marks.
const (
	A64AES       = 3
	A64SHA2      = 6
	A64CRC       = 7
	A64LSE       = 8
	A64FullFP16  = 9
	A64RDM       = 12
	A64JSConv    = 13
	A64ComplxNum = 14
	A64RCPC      = 15
	A64CCPP      = 16
	A64SHA3      = 17
	A64SM4       = 19
	A64DotProd   = 20
	A64SVE       = 22
	A64FP16FML   = 23
	A64DIT       = 24
	A64USCAT     = 25
	A64RCPCImmo  = 26
	A64FlagM     = 27
	A64SSBS      = 28
	A64SB        = 29
	A64PAuth     = 30

	A64CCDP        = 32 + 0
	A64SVE2        = 32 + 1
	A64SVE2AES     = 32 + 2
	A64SVE2BitPerm = 32 + 4
	A64SVE2SHA3    = 32 + 5
	A64SVE2SM4     = 32 + 6
	A64AltNZCV     = 32 + 7
	A64FPToInt     = 32 + 8
	A64F32MM       = 32 + 10
	A64F64MM       = 32 + 11
	A64I8MM        = 32 + 13
	A64BF16        = 32 + 14
	A64DGH         = 32 + 15
	A64Rand        = 32 + 16
	A64BTI         = 32 + 17
	A64MTE         = 32 + 18

	A64V81A = 64 + 0
	A64V82A = 64 + 1
	A64V83A = 64 + 2
	A64V84A = 64 + 3
	A64V85A = 64 + 4
	A64V86A = 64 + 5
)

var aarch64Features = []features.Name{
	{Name: "aes", Bit: A64AES},
	{Name: "sha2", Bit: A64SHA2},
	{Name: "crc", Bit: A64CRC},
	{Name: "lse", Bit: A64LSE},
	{Name: "fullfp16", Bit: A64FullFP16},
	{Name: "rdm", Bit: A64RDM},
	{Name: "jsconv", Bit: A64JSConv},
	{Name: "complxnum", Bit: A64ComplxNum},
	{Name: "rcpc", Bit: A64RCPC},
	{Name: "ccpp", Bit: A64CCPP},
	{Name: "sha3", Bit: A64SHA3},
	{Name: "sm4", Bit: A64SM4},
	{Name: "dotprod", Bit: A64DotProd},
	{Name: "sve", Bit: A64SVE},
	{Name: "fp16fml", Bit: A64FP16FML},
	{Name: "dit", Bit: A64DIT},
	{Name: "uscat", Bit: A64USCAT},
	{Name: "rcpc-immo", Bit: A64RCPCImmo},
	{Name: "flagm", Bit: A64FlagM},
	{Name: "ssbs", Bit: A64SSBS},
	{Name: "sb", Bit: A64SB},
	{Name: "pauth", Bit: A64PAuth},
	{Name: "ccdp", Bit: A64CCDP},
	{Name: "sve2", Bit: A64SVE2, MinBackend: 90000},
	{Name: "sve2-aes", Bit: A64SVE2AES, MinBackend: 90000},
	{Name: "sve2-bitperm", Bit: A64SVE2BitPerm, MinBackend: 90000},
	{Name: "sve2-sha3", Bit: A64SVE2SHA3, MinBackend: 90000},
	{Name: "sve2-sm4", Bit: A64SVE2SM4, MinBackend: 90000},
	{Name: "altnzcv", Bit: A64AltNZCV},
	{Name: "fptoint", Bit: A64FPToInt},
	{Name: "f32mm", Bit: A64F32MM, MinBackend: 120000},
	{Name: "f64mm", Bit: A64F64MM, MinBackend: 120000},
	{Name: "i8mm", Bit: A64I8MM, MinBackend: 110000},
	{Name: "bf16", Bit: A64BF16, MinBackend: 110000},
	{Name: "dgh", Bit: A64DGH, MinBackend: 110000},
	{Name: "rand", Bit: A64Rand, MinBackend: 90000},
	{Name: "bti", Bit: A64BTI, MinBackend: 100000},
	{Name: "mte", Bit: A64MTE, MinBackend: 110000},
	{Name: "v8.1a", Bit: A64V81A},
	{Name: "v8.2a", Bit: A64V82A},
	{Name: "v8.3a", Bit: A64V83A},
	{Name: "v8.4a", Bit: A64V84A},
	{Name: "v8.5a", Bit: A64V85A},
	{Name: "v8.6a", Bit: A64V86A},
}

// The edges that depend on architecture versions live in
// enableArchAArch64 instead.
var aarch64Deps = []features.Dep{
	{Bit: A64RCPCImmo, Requires: A64RCPC},
	{Bit: A64SHA3, Requires: A64SHA2},
	{Bit: A64CCDP, Requires: A64CCPP},
	{Bit: A64SVE, Requires: A64FullFP16},
	{Bit: A64FP16FML, Requires: A64FullFP16},
	{Bit: A64AltNZCV, Requires: A64FlagM},
	{Bit: A64SVE2, Requires: A64SVE},
	{Bit: A64SVE2AES, Requires: A64SVE2},
	{Bit: A64SVE2AES, Requires: A64AES},
	{Bit: A64SVE2BitPerm, Requires: A64SVE2},
	{Bit: A64SVE2SHA3, Requires: A64SVE2},
	{Bit: A64SVE2SHA3, Requires: A64SHA3},
	{Bit: A64SVE2SM4, Requires: A64SVE2},
	{Bit: A64SVE2SM4, Requires: A64SM4},
	{Bit: A64F32MM, Requires: A64SVE},
	{Bit: A64F64MM, Requires: A64SVE},
}

// enableArchAArch64 applies the version ladder and the instruction-set
// bits each ladder step unlocks. The if-chain runs highest step first
// so one pass reaches the bottom of the ladder.
func enableArchAArch64(l *features.List) {
	if l.Test(A64V86A) {
		l.Set(A64V85A)
	}
	if l.Test(A64V85A) {
		l.Set(A64V84A)
	}
	if l.Test(A64V84A) {
		l.Set(A64V83A)
	}
	if l.Test(A64V83A) {
		l.Set(A64V82A)
	}
	if l.Test(A64V82A) {
		l.Set(A64V81A)
	}
	if l.Test(A64V81A) {
		l.Set(A64CRC)
		l.Set(A64LSE)
		l.Set(A64RDM)
	}
	if l.Test(A64V82A) {
		l.Set(A64CCPP)
	}
	if l.Test(A64V83A) {
		l.Set(A64JSConv)
		l.Set(A64ComplxNum)
		l.Set(A64RCPC)
	}
	if l.Test(A64V84A) {
		l.Set(A64DIT)
		l.Set(A64RCPCImmo)
		l.Set(A64FlagM)
	}
	if l.Test(A64V85A) {
		l.Set(A64SB)
		l.Set(A64CCDP)
		l.Set(A64AltNZCV)
		l.Set(A64FPToInt)
	}
	if l.Test(A64V86A) {
		l.Set(A64I8MM)
		l.Set(A64BF16)
	}
}

func fm(bits ...uint32) features.List { return features.Make(bits...) }

// Architecture baseline feature sets; each model below ORs one of
// these with its own extras.
var (
	a64Generic       = fm()
	a64V8CRC         = fm(A64CRC)
	a64V8CRCCrypto   = a64V8CRC.Union(fm(A64AES, A64SHA2))
	a64V81A          = a64V8CRC.Union(fm(A64V81A, A64LSE, A64RDM))
	a64V81ACrypto    = a64V81A.Union(fm(A64AES, A64SHA2))
	a64V82A          = a64V81A.Union(fm(A64V82A, A64CCPP))
	a64V82ACrypto    = a64V82A.Union(fm(A64AES, A64SHA2))
	a64V83A          = a64V82A.Union(fm(A64V83A, A64JSConv, A64ComplxNum, A64RCPC))
	a64V83ACrypto    = a64V83A.Union(fm(A64AES, A64SHA2))
	a64V84A          = a64V83A.Union(fm(A64V84A, A64DIT, A64RCPCImmo, A64FlagM))
	a64V84ACrypto    = a64V84A.Union(fm(A64AES, A64SHA2))
	a64V85A          = a64V84A.Union(fm(A64V85A, A64SB, A64CCDP, A64AltNZCV, A64FPToInt))
	a64V85ACrypto    = a64V85A.Union(fm(A64AES, A64SHA2))
	a64V86A          = a64V85A.Union(fm(A64V86A, A64I8MM, A64BF16))
	a64CortexA55     = a64V82A.Union(fm(A64DotProd, A64RCPC, A64FullFP16))
	a64CortexA65     = a64V82A.Union(fm(A64RCPC, A64FullFP16, A64SSBS))
	a64CortexA75     = a64V82A.Union(fm(A64DotProd, A64RCPC, A64FullFP16))
	a64CortexA76     = a64V82A.Union(fm(A64DotProd, A64RCPC, A64FullFP16, A64SSBS))
	a64NeoverseE1    = a64V82A.Union(fm(A64RCPC, A64FullFP16, A64SSBS))
	a64NeoverseV1    = a64V84A.Union(fm(A64SVE, A64I8MM, A64BF16, A64FullFP16, A64SSBS, A64Rand))
	a64NeoverseN2    = a64V85A.Union(fm(A64SVE, A64I8MM, A64BF16, A64FullFP16, A64SVE2, A64SVE2BitPerm, A64Rand, A64MTE))
	a64A64FX         = a64V82A.Union(fm(A64SHA2, A64FullFP16, A64SVE, A64ComplxNum))
	a64TSV110        = a64V82ACrypto.Union(fm(A64DotProd, A64FullFP16))
	a64Falkor        = a64V8CRCCrypto.Union(fm(A64RDM))
	a64ExynosM4      = a64V82ACrypto.Union(fm(A64DotProd, A64FullFP16))
	a64NvidiaCarmel  = a64V82ACrypto.Union(fm(A64FullFP16))
	a64AppleA10      = a64V8CRCCrypto.Union(fm(A64RDM))
	a64AppleA11      = a64V82ACrypto.Union(fm(A64FullFP16))
	a64AppleA12      = a64V83ACrypto.Union(fm(A64FullFP16))
	a64AppleA13      = a64V84ACrypto.Union(fm(A64FP16FML, A64FullFP16, A64SHA3))
	a64AppleA14      = a64V85ACrypto.Union(fm(A64DotProd, A64FP16FML, A64FullFP16, A64SHA3))
	a64AppleA15Class = a64V85ACrypto.Union(fm(A64DotProd, A64FP16FML, A64FullFP16, A64SHA3, A64I8MM, A64BF16))
	a64AppleM1       = a64V85ACrypto.Union(fm(A64DotProd, A64FP16FML, A64FullFP16, A64SHA3))
)

var aarch64CPUs = []Spec{
	{"generic", Generic, Generic, 0, a64Generic},
	{"armv8.1-a", ArmV81A, Generic, 0, a64V81A},
	{"armv8.2-a", ArmV82A, Generic, 0, a64V82A},
	{"armv8.3-a", ArmV83A, Generic, 0, a64V83A},
	{"armv8.4-a", ArmV84A, Generic, 0, a64V84A},
	{"armv8.5-a", ArmV85A, Generic, 0, a64V85A},
	{"armv8.6-a", ArmV86A, Generic, 0, a64V86A},
	{"cortex-a34", CortexA34, CortexA35, 110000, a64V8CRC},
	{"cortex-a35", CortexA35, Generic, 0, a64V8CRC},
	{"cortex-a53", CortexA53, Generic, 0, a64V8CRC},
	{"cortex-a55", CortexA55, Generic, 0, a64CortexA55},
	{"cortex-a57", CortexA57, Generic, 0, a64V8CRCCrypto},
	{"cortex-a65", CortexA65, CortexA75, 100000, a64CortexA65},
	{"cortex-a65ae", CortexA65AE, CortexA75, 100000, a64CortexA65},
	{"cortex-a72", CortexA72, Generic, 0, a64V8CRC},
	{"cortex-a73", CortexA73, Generic, 0, a64V8CRC},
	{"cortex-a75", CortexA75, Generic, 0, a64CortexA75},
	{"cortex-a76", CortexA76, Generic, 0, a64CortexA76},
	{"cortex-a76ae", CortexA76AE, Generic, 0, a64CortexA76},
	{"cortex-a77", CortexA77, CortexA76, 110000, a64CortexA76},
	{"cortex-a78", CortexA78, CortexA77, 110000, a64CortexA76},
	{"cortex-x1", CortexX1, CortexA78, 110000, a64CortexA76},
	{"neoverse-e1", NeoverseE1, CortexA76, 100000, a64NeoverseE1},
	{"neoverse-n1", NeoverseN1, CortexA76, 100000, a64CortexA76},
	{"neoverse-v1", NeoverseV1, NeoverseN1, neverBackend, a64NeoverseV1},
	{"neoverse-n2", NeoverseN2, NeoverseN1, neverBackend, a64NeoverseN2},
	{"thunderx", ThunderX, Generic, 0, a64V8CRCCrypto},
	{"thunderxt88", ThunderX88, Generic, 0, a64V8CRCCrypto},
	{"thunderxt88p1", ThunderX88P1, ThunderX88, neverBackend, a64V8CRCCrypto},
	{"thunderxt81", ThunderX81, Generic, 0, a64V8CRCCrypto},
	{"thunderxt83", ThunderX83, Generic, 0, a64V8CRCCrypto},
	{"thunderx2t99", ThunderX2T99, Generic, 0, a64V81ACrypto},
	{"thunderx2t99p1", ThunderX2T99P1, ThunderX2T99, neverBackend, a64V81ACrypto},
	{"octeontx2", OcteonTX2, CortexA57, neverBackend, a64V82ACrypto},
	{"octeontx2t98", OcteonTX2T98, CortexA57, neverBackend, a64V82ACrypto},
	{"octeontx2t96", OcteonTX2T96, CortexA57, neverBackend, a64V82ACrypto},
	{"octeontx2f95", OcteonTX2F95, CortexA57, neverBackend, a64V82ACrypto},
	{"octeontx2f95n", OcteonTX2F95N, CortexA57, neverBackend, a64V82ACrypto},
	{"octeontx2f95mm", OcteonTX2F95MM, CortexA57, neverBackend, a64V82ACrypto},
	{"a64fx", A64FX, Generic, 110000, a64A64FX},
	{"tsv110", TSV110, Generic, 0, a64TSV110},
	{"phecda", Phecda, Falkor, neverBackend, a64V8CRCCrypto},
	{"denver1", Denver1, Generic, neverBackend, a64Generic},
	{"denver2", Denver2, Generic, neverBackend, a64V8CRCCrypto},
	{"carmel", Carmel, Generic, 110000, a64NvidiaCarmel},
	{"xgene1", XGene1, Generic, neverBackend, a64Generic},
	{"xgene2", XGene2, Generic, neverBackend, a64Generic},
	{"xgene3", XGene3, Generic, neverBackend, a64Generic},
	{"kyro", Kyro, Generic, 0, a64V8CRCCrypto},
	{"falkor", Falkor, Generic, 0, a64Falkor},
	{"saphira", Saphira, Generic, 0, a64V84ACrypto},
	{"exynos-m1", ExynosM1, Generic, neverBackend, a64V8CRCCrypto},
	{"exynos-m2", ExynosM2, Generic, neverBackend, a64V8CRCCrypto},
	{"exynos-m3", ExynosM3, Generic, 0, a64V8CRCCrypto},
	{"exynos-m4", ExynosM4, Generic, 0, a64ExynosM4},
	{"exynos-m5", ExynosM5, ExynosM4, 110000, a64ExynosM4},
	{"apple-a7", AppleA7, Generic, 100000, a64V8CRCCrypto},
	{"apple-a8", AppleA8, Generic, 100000, a64V8CRCCrypto},
	{"apple-a9", AppleA9, Generic, 100000, a64V8CRCCrypto},
	{"apple-a10", AppleA10, Generic, 100000, a64AppleA10},
	{"apple-a11", AppleA11, Generic, 100000, a64AppleA11},
	{"apple-a12", AppleA12, Generic, 100000, a64AppleA12},
	{"apple-a13", AppleA13, Generic, 100000, a64AppleA13},
	{"apple-a14", AppleA14, AppleA13, 120000, a64AppleA14},
	{"apple-a15", AppleA15, AppleA14, 160000, a64AppleA15Class},
	{"apple-a16", AppleA16, AppleA14, 160000, a64AppleA15Class},
	{"apple-a17", AppleA17, AppleA16, 190000, a64AppleA15Class},
	{"apple-m1", AppleM1, AppleA14, 130000, a64AppleM1},
	{"apple-m2", AppleM2, AppleM1, 160000, a64AppleA15Class},
	{"apple-m3", AppleM3, AppleM2, 180000, a64AppleA15Class},
	{"apple-m4", AppleM4, AppleM3, 190000, a64AppleA15Class},
	{"apple-s4", AppleS4, Generic, 100000, a64AppleA12},
	{"apple-s5", AppleS5, Generic, 100000, a64AppleA12},
	{"thunderx3t110", ThunderX3T110, ThunderX2T99, 110000, a64V83ACrypto},
}

// AArch64 is the 64-bit family catalog.
var AArch64 = &Family{
	AArch64:    true,
	Features:   aarch64Features,
	Deps:       aarch64Deps,
	CPUs:       aarch64CPUs,
	Mask:       maskOf(aarch64Features),
	RealMask:   maskOf(aarch64Features).Intersect(features.List{^uint32(0), ^uint32(0), 0}),
	archEnable: enableArchAArch64,
}

func maskOf(names []features.Name) features.List {
	var l features.List
	for _, n := range names {
		l.Set(n.Bit)
	}
	return l
}
