package catalog

import (
	"testing"

	"github.com/hartyporpoise/armdispatch/internal/features"
)

func families() map[string]*Family {
	return map[string]*Family{"aarch64": AArch64, "aarch32": AArch32}
}

func TestFeatureBitsUniqueAndOrdered(t *testing.T) {
	for famName, fam := range families() {
		t.Run(famName, func(t *testing.T) {
			seenBit := map[uint32]string{}
			seenName := map[string]bool{}
			last := -1
			for _, fn := range fam.Features {
				if fn.Bit >= 32*features.Words {
					t.Errorf("feature %s bit %d exceeds vector width", fn.Name, fn.Bit)
				}
				if prev, dup := seenBit[fn.Bit]; dup {
					t.Errorf("bit %d assigned to both %s and %s", fn.Bit, prev, fn.Name)
				}
				seenBit[fn.Bit] = fn.Name
				if seenName[fn.Name] {
					t.Errorf("duplicate feature name %s", fn.Name)
				}
				seenName[fn.Name] = true
				if int(fn.Bit) <= last {
					t.Errorf("feature table not in ascending bit order at %s", fn.Name)
				}
				last = int(fn.Bit)
			}
		})
	}
}

func TestRealMaskTopWordZero(t *testing.T) {
	for famName, fam := range families() {
		if fam.RealMask[2] != 0 {
			t.Errorf("%s: real mask top word = %#x, want 0", famName, fam.RealMask[2])
		}
		if !fam.RealMask.Subset(fam.Mask) {
			t.Errorf("%s: real mask not a subset of the full mask", famName)
		}
	}
}

func TestDepsFormDAG(t *testing.T) {
	for famName, fam := range families() {
		t.Run(famName, func(t *testing.T) {
			adj := map[uint32][]uint32{}
			for _, d := range fam.Deps {
				adj[d.Bit] = append(adj[d.Bit], d.Requires)
			}
			const (
				white = 0
				gray  = 1
				black = 2
			)
			color := map[uint32]int{}
			var visit func(uint32) bool
			visit = func(n uint32) bool {
				switch color[n] {
				case gray:
					return false
				case black:
					return true
				}
				color[n] = gray
				for _, m := range adj[n] {
					if !visit(m) {
						return false
					}
				}
				color[n] = black
				return true
			}
			for n := range adj {
				if !visit(n) {
					t.Fatalf("dependency cycle through bit %d", n)
				}
			}
		})
	}
}

func TestFallbackChainsTerminate(t *testing.T) {
	for famName, fam := range families() {
		t.Run(famName, func(t *testing.T) {
			for _, spec := range fam.CPUs {
				cur := &spec
				for steps := 0; cur.MinBackend > 0; steps++ {
					if steps > len(fam.CPUs) {
						t.Fatalf("%s: fallback chain does not terminate", spec.Name)
					}
					next := fam.FindCPU(cur.Fallback)
					if next == nil {
						t.Fatalf("%s: fallback %d not in catalog", cur.Name, cur.Fallback)
					}
					cur = next
				}
			}
		})
	}
}

func TestCPUNameRoundTrip(t *testing.T) {
	for famName, fam := range families() {
		t.Run(famName, func(t *testing.T) {
			for _, spec := range fam.CPUs {
				found := fam.FindCPUByName(spec.Name)
				if found == nil {
					t.Fatalf("FindCPUByName(%s) = nil", spec.Name)
				}
				if got := fam.CPUName(found.ID); got != spec.Name {
					t.Errorf("CPUName(FindCPUByName(%s).ID) = %s", spec.Name, got)
				}
			}
		})
	}
}

func TestEnableDependsProperties(t *testing.T) {
	for famName, fam := range families() {
		t.Run(famName, func(t *testing.T) {
			for _, spec := range fam.CPUs {
				in := spec.Features
				closed := in
				fam.EnableDepends(&closed)
				if !in.Subset(closed) {
					t.Errorf("%s: closure dropped base bits", spec.Name)
				}
				again := closed
				fam.EnableDepends(&again)
				if again != closed {
					t.Errorf("%s: closure not idempotent", spec.Name)
				}
			}
		})
	}
}

func TestAArch64Ladder(t *testing.T) {
	l := features.Make(A64V86A)
	AArch64.EnableDepends(&l)
	for _, bit := range []uint32{
		A64V85A, A64V84A, A64V83A, A64V82A, A64V81A,
		A64CRC, A64LSE, A64RDM, A64CCPP, A64JSConv, A64ComplxNum, A64RCPC,
		A64DIT, A64RCPCImmo, A64FlagM, A64SB, A64CCDP, A64AltNZCV, A64FPToInt,
		A64I8MM, A64BF16,
	} {
		if !l.Test(bit) {
			t.Errorf("v8.6a closure missing bit %d", bit)
		}
	}
}

func TestAArch32Ladder(t *testing.T) {
	tests := []struct {
		name string
		in   features.List
		want []uint32
	}{
		{
			name: "v8_aclass_unlocks_simd",
			in:   features.Make(A32V8, A32AClass),
			want: []uint32{A32V7, A32NEON, A32VFP3, A32VFP4, A32HWDiv, A32HWDivARM, A32D32},
		},
		{
			name: "v8_1a_implies_v8_aclass",
			in:   features.Make(A32V81A),
			want: []uint32{A32V8, A32AClass, A32CRC, A32V7, A32NEON},
		},
		{
			name: "v8m_main_implies_mclass",
			in:   features.Make(A32V8MMain),
			want: []uint32{A32V8, A32MClass, A32V7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.in
			AArch32.EnableDepends(&l)
			for _, bit := range tt.want {
				if !l.Test(bit) {
					t.Errorf("closure of %v missing bit %d", tt.in, bit)
				}
			}
		})
	}
	// M-profile must not pick up the A-profile SIMD block.
	l := features.Make(A32V8MMain)
	AArch32.EnableDepends(&l)
	if l.Test(A32NEON) {
		t.Error("v8m.main closure enabled neon")
	}
}

func TestBaseFeatureSpotChecks(t *testing.T) {
	a57 := AArch64.FindCPUByName("cortex-a57")
	for _, bit := range []uint32{A64CRC, A64AES, A64SHA2} {
		if !a57.Features.Test(bit) {
			t.Errorf("cortex-a57 base missing bit %d", bit)
		}
	}

	m2 := AArch64.FindCPUByName("apple-m2")
	for _, bit := range []uint32{A64V85A, A64AES, A64SHA2, A64DotProd, A64FP16FML, A64FullFP16, A64SHA3, A64I8MM, A64BF16} {
		if !m2.Features.Test(bit) {
			t.Errorf("apple-m2 base missing bit %d", bit)
		}
	}
	if m2.Features.Test(A64V86A) {
		t.Error("apple-m2 base should not carry the v8.6a mark")
	}

	// cortex-a76 must be a strict superset of cortex-a55 so image
	// matching prefers generic variants on the little core.
	a55 := AArch64.FindCPUByName("cortex-a55").Features
	a76 := AArch64.FindCPUByName("cortex-a76").Features
	if !a55.Subset(a76) || a55 == a76 {
		t.Error("cortex-a55 features not a strict subset of cortex-a76")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ares", "neoverse-n1"},
		{"zeus", "neoverse-v1"},
		{"cyclone", "apple-a7"},
		{"typhoon", "apple-a8"},
		{"twister", "apple-a9"},
		{"hurricane", "apple-a10"},
		{"cortex-a76", "cortex-a76"},
		{"nonsense", "nonsense"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%s) = %s, want %s", tt.in, got, tt.want)
		}
		if got := NormalizeName(NormalizeName(tt.in)); got != tt.want {
			t.Errorf("NormalizeName not idempotent for %s", tt.in)
		}
	}
}

func TestLookupCPUID(t *testing.T) {
	tests := []struct {
		name string
		id   CPUID
		want CPU
	}{
		{"arm_cortex_a53", CPUID{0x41, 0, 0xd03}, CortexA53},
		{"arm_neoverse_n1", CPUID{0x41, 0, 0xd0c}, NeoverseN1},
		{"cavium_tx88_pass1", CPUID{0x43, 0, 0xa1}, ThunderX88P1},
		{"cavium_tx88", CPUID{0x43, 1, 0xa1}, ThunderX88},
		{"samsung_m1", CPUID{0x53, 1, 0x1}, ExynosM1},
		{"samsung_m2_by_variant", CPUID{0x53, 4, 0x1}, ExynosM2},
		{"samsung_m3", CPUID{0x53, 1, 0x2}, ExynosM3},
		{"samsung_bad_variant", CPUID{0x53, 2, 0x2}, Generic},
		{"apple_m1_pcore", CPUID{0x61, 0, 0x23}, AppleM1},
		{"apple_m2_ecore", CPUID{0x61, 0, 0x32}, AppleM2},
		{"qualcomm_kryo4xx_gold", CPUID{0x51, 0, 0x804}, CortexA76},
		{"hisilicon_kirin980", CPUID{0x48, 0, 0xd40}, CortexA76},
		{"unknown_implementer", CPUID{0x99, 0, 0x1}, Generic},
		{"unknown_part", CPUID{0x41, 0, 0xfff}, Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LookupCPUID(tt.id); got != tt.want {
				t.Errorf("LookupCPUID(%+v) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestCPUIDLess(t *testing.T) {
	a := CPUID{0x41, 1, 0xd03}
	b := CPUID{0x41, 0, 0xd05}
	if !a.Less(b) || b.Less(a) {
		t.Error("ordering must compare part before variant")
	}
}

func TestGenericFor(t *testing.T) {
	if got := AArch64.GenericFor(Arch{Version: 8, Profile: 'A'}); got != Generic {
		t.Errorf("aarch64 generic = %d, want Generic", got)
	}
	tests := []struct {
		arch Arch
		want CPU
	}{
		{Arch{8, 'A'}, ArmV8A},
		{Arch{8, 'R'}, ArmV8R},
		{Arch{8, 'M'}, ArmV8MBase},
		{Arch{7, 'A'}, ArmV7A},
		{Arch{7, 'R'}, ArmV7R},
		{Arch{7, 'M'}, ArmV7M},
		{Arch{7, 0}, ArmV7A},
		{Arch{6, 0}, Generic},
	}
	for _, tt := range tests {
		if got := AArch32.GenericFor(tt.arch); got != tt.want {
			t.Errorf("aarch32 GenericFor(%+v) = %d, want %d", tt.arch, got, tt.want)
		}
	}
}

func TestCheckArch(t *testing.T) {
	// A v7 core in a v8 boot is ignored; a v8 core in a v7 boot is fine.
	if AArch32.CheckArch(CortexA7, Arch{Version: 8, Profile: 'A'}) {
		t.Error("v7 cortex-a7 accepted for a v8 arch")
	}
	if !AArch32.CheckArch(CortexA53, Arch{Version: 7, Profile: 'A'}) {
		t.Error("v8 cortex-a53 rejected for a v7 arch")
	}
	if AArch32.CheckArch(CortexM33, Arch{Version: 8, Profile: 'A'}) {
		t.Error("m-class core accepted for an a-profile arch")
	}
	// An id that only exists for AArch64 must be rejected on AArch32.
	if AArch32.CheckArch(AppleM1, Arch{Version: 8, Profile: 'A'}) {
		t.Error("aarch64-only core accepted on aarch32")
	}
}

func TestMaxVectorSize(t *testing.T) {
	tests := []struct {
		name string
		fam  *Family
		l    features.List
		want int
	}{
		{"a64_sve2", AArch64, features.Make(A64SVE, A64SVE2), 256},
		{"a64_sve", AArch64, features.Make(A64SVE), 128},
		{"a64_neon_only", AArch64, features.List{}, 16},
		{"a32_neon", AArch32, features.Make(A32NEON), 16},
		{"a32_no_neon", AArch32, features.List{}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fam.MaxVectorSize(tt.l); got != tt.want {
				t.Errorf("MaxVectorSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestArchFromMachine(t *testing.T) {
	tests := []struct {
		machine string
		want    Arch
	}{
		{"armv6l", Arch{Version: 6}},
		{"armv7l", Arch{Version: 7}},
		{"armv7ml", Arch{Version: 7, Profile: 'M'}},
		{"armv8l", Arch{Version: 8}},
		{"aarch64", Arch{Version: 8}},
		{"x86_64", Arch{}},
	}
	for _, tt := range tests {
		if got := ArchFromMachine(tt.machine); got != tt.want {
			t.Errorf("ArchFromMachine(%s) = %+v, want %+v", tt.machine, got, tt.want)
		}
	}
}
