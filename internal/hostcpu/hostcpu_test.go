package hostcpu

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"github.com/hartyporpoise/armdispatch/internal/features"
)

// writeAuxv writes a synthetic auxiliary vector with the host's word
// size, terminated by a zero-type entry.
func writeAuxv(t *testing.T, entries [][2]uint64) string {
	t.Helper()
	var buf []byte
	put := func(v uint64) {
		switch uintSize {
		case 32:
			buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
		case 64:
			buf = binary.LittleEndian.AppendUint64(buf, v)
		}
	}
	for _, e := range entries {
		put(e[0])
		put(e[1])
	}
	put(0)
	put(0)
	path := filepath.Join(t.TempDir(), "auxv")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadAuxv(t *testing.T) {
	tests := []struct {
		name       string
		entries    [][2]uint64
		wantHWCAP  uint32
		wantHWCAP2 uint32
	}{
		{
			name:       "both_present",
			entries:    [][2]uint64{{6, 4096}, {atHWCAP, 0x0887}, {atHWCAP2, 0x3}},
			wantHWCAP:  0x0887,
			wantHWCAP2: 0x3,
		},
		{
			name:      "hwcap2_missing",
			entries:   [][2]uint64{{atHWCAP, 0xff}},
			wantHWCAP: 0xff,
		},
		{
			name:      "high_bits_dropped",
			entries:   [][2]uint64{{atHWCAP, 0x1_0000_00ff}},
			wantHWCAP: 0xff,
		},
		{
			name: "empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeAuxv(t, tt.entries)
			hwcap, hwcap2 := readAuxv(path)
			if hwcap != tt.wantHWCAP || hwcap2 != tt.wantHWCAP2 {
				t.Errorf("readAuxv = %#x, %#x, want %#x, %#x", hwcap, hwcap2, tt.wantHWCAP, tt.wantHWCAP2)
			}
		})
	}
}

func TestReadAuxvMissingFile(t *testing.T) {
	hwcap, hwcap2 := readAuxv(filepath.Join(t.TempDir(), "nope"))
	if hwcap != 0 || hwcap2 != 0 {
		t.Errorf("missing auxv should report zeros, got %#x, %#x", hwcap, hwcap2)
	}
}

func writeMIDR(t *testing.T, dir, cpu, val string) {
	t.Helper()
	d := filepath.Join(dir, cpu, "regs", "identification")
	if err := os.MkdirAll(d, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(d, "midr_el1"), []byte(val+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadSysfsMIDR(t *testing.T) {
	dir := t.TempDir()
	// cortex-a76 p-core and cortex-a55 e-core, one duplicate.
	writeMIDR(t, dir, "cpu0", "0x410fd0b0")
	writeMIDR(t, dir, "cpu1", "0x410fd0b0")
	writeMIDR(t, dir, "cpu2", "0x410fd050")
	if err := os.MkdirAll(filepath.Join(dir, "cpufreq"), 0o755); err != nil {
		t.Fatal(err)
	}

	ids := readCPUIDs(dir, filepath.Join(dir, "absent-cpuinfo"))
	want := []catalog.CPUID{
		{Implementer: 0x41, Variant: 0, Part: 0xd05},
		{Implementer: 0x41, Variant: 0, Part: 0xd0b},
	}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids (%v), want %d", len(ids), ids, len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %+v, want %+v", i, ids[i], want[i])
		}
	}
}

const sampleCPUInfo = `processor	: 0
BogoMIPS	: 38.40
Features	: fp asimd evtstrm aes pmull sha1 sha2 crc32
CPU implementer	: 0x41
CPU architecture: 8
CPU variant	: 0x0
CPU part	: 0xd03
CPU revision	: 4

processor	: 1
BogoMIPS	: 38.40
CPU implementer	: 0x41
CPU architecture: 8
CPU variant	: 0x1
CPU part	: 0xd0b
CPU revision	: 0

processor	: 2
BogoMIPS	: 38.40
CPU variant	: 0x0
CPU revision	: 4
`

func TestReadProcCPUInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpuinfo")
	if err := os.WriteFile(path, []byte(sampleCPUInfo), 0o644); err != nil {
		t.Fatal(err)
	}
	ids := readProcCPUInfo(path)
	// The third block lacks implementer and part and contributes
	// nothing.
	want := []catalog.CPUID{
		{Implementer: 0x41, Variant: 0x0, Part: 0xd03},
		{Implementer: 0x41, Variant: 0x1, Part: 0xd0b},
	}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids (%v), want %d", len(ids), ids, len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %+v, want %+v", i, ids[i], want[i])
		}
	}
}

func TestDetect(t *testing.T) {
	arch64 := catalog.Arch{Version: 8, Profile: 'A'}
	hwcapCRC := uint32(1 << catalog.A64CRC)

	tests := []struct {
		name     string
		fam      *catalog.Family
		arch     catalog.Arch
		hwcap    uint32
		hwcap2   uint32
		ids      []catalog.CPUID
		wantCPU  catalog.CPU
		wantBits []uint32
		skipBits []uint32
	}{
		{
			name:    "big_little_keeps_big",
			fam:     catalog.AArch64,
			arch:    arch64,
			hwcap:   hwcapCRC,
			ids:     []catalog.CPUID{{Implementer: 0x41, Variant: 0, Part: 0xd05}, {Implementer: 0x41, Variant: 0, Part: 0xd0b}},
			wantCPU: catalog.CortexA76,
			// Extras are the intersection of a55 and a76 catalog sets.
			wantBits: []uint32{catalog.A64CRC, catalog.A64DotProd, catalog.A64FullFP16, catalog.A64V82A},
			skipBits: []uint32{catalog.A64SSBS},
		},
		{
			name:     "unknown_core_poisons_extras",
			fam:      catalog.AArch64,
			arch:     arch64,
			hwcap:    hwcapCRC,
			ids:      []catalog.CPUID{{Implementer: 0x41, Variant: 0, Part: 0xd0b}, {Implementer: 0x99, Variant: 0, Part: 0x123}},
			wantCPU:  catalog.CortexA76,
			wantBits: []uint32{catalog.A64CRC},
			skipBits: []uint32{catalog.A64DotProd, catalog.A64V82A},
		},
		{
			name:    "no_cores_detected_picks_generic",
			fam:     catalog.AArch64,
			arch:    arch64,
			hwcap:   hwcapCRC,
			wantCPU: catalog.Generic,
		},
		{
			name:     "pauth_lifted_from_pacg",
			fam:      catalog.AArch64,
			arch:     arch64,
			hwcap:    1 << 31,
			wantCPU:  catalog.Generic,
			wantBits: []uint32{catalog.A64PAuth},
		},
		{
			name:     "unnamed_hwcap_bits_masked",
			fam:      catalog.AArch64,
			arch:     arch64,
			hwcap:    1 << 2, // evtstrm, not a catalog feature
			wantCPU:  catalog.Generic,
			skipBits: []uint32{2},
		},
		{
			name:    "arch_mismatch_core_ignored",
			fam:     catalog.AArch32,
			arch:    catalog.Arch{Version: 8, Profile: 'A'},
			ids:     []catalog.CPUID{{Implementer: 0x41, Variant: 0, Part: 0xc07}}, // cortex-a7, v7 only
			wantCPU: catalog.ArmV8A,
			wantBits: []uint32{
				catalog.A32V7, catalog.A32V8, catalog.A32AClass,
			},
		},
		{
			name:    "aarch32_v7_host",
			fam:     catalog.AArch32,
			arch:    catalog.Arch{Version: 7, Profile: 'A'},
			ids:     []catalog.CPUID{{Implementer: 0x41, Variant: 0, Part: 0xc07}},
			wantCPU: catalog.CortexA7,
			wantBits: []uint32{
				catalog.A32V7, catalog.A32AClass, catalog.A32NEON, catalog.A32VFP3, catalog.A32VFP4,
			},
			skipBits: []uint32{catalog.A32V8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(tt.fam, tt.arch, tt.hwcap, tt.hwcap2, tt.ids)
			if got.CPU != tt.wantCPU {
				t.Errorf("cpu = %s, want %s", tt.fam.CPUName(got.CPU), tt.fam.CPUName(tt.wantCPU))
			}
			for _, bit := range tt.wantBits {
				if !got.Features.Test(bit) {
					t.Errorf("feature bit %d missing", bit)
				}
			}
			for _, bit := range tt.skipBits {
				if got.Features.Test(bit) {
					t.Errorf("feature bit %d unexpectedly present", bit)
				}
			}
			if !got.Features.Subset(tt.fam.Mask) {
				t.Error("detected features carry unnamed bits")
			}
		})
	}
}

func TestShrinkBigLittle(t *testing.T) {
	mk := func(cpus ...catalog.CPU) []cpuidPair {
		var out []cpuidPair
		for _, c := range cpus {
			out = append(out, cpuidPair{cpu: c})
		}
		return out
	}
	tests := []struct {
		name string
		in   []cpuidPair
		want []catalog.CPU
	}{
		{
			name: "drops_little",
			in:   mk(catalog.CortexA53, catalog.CortexA72),
			want: []catalog.CPU{catalog.CortexA72},
		},
		{
			name: "unlisted_survive",
			in:   mk(catalog.CortexA53, catalog.A64FX),
			want: []catalog.CPU{catalog.CortexA53, catalog.A64FX},
		},
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shrinkBigLittle(tt.in, catalog.V8BigLittleOrder)
			if len(got) != len(tt.want) {
				t.Fatalf("kept %d entries, want %d", len(got), len(tt.want))
			}
			for i, c := range tt.want {
				if got[i].cpu != c {
					t.Errorf("kept[%d] = %d, want %d", i, got[i].cpu, c)
				}
			}
		})
	}
}

func TestBrandToCPU(t *testing.T) {
	tests := []struct {
		brand string
		want  catalog.CPU
	}{
		{"Apple M1", catalog.AppleM1},
		{"Apple M2 Pro", catalog.AppleM2},
		{"Apple M3 Max", catalog.AppleM3},
		{"Apple M4", catalog.AppleM4},
		{"Apple A17 Pro", catalog.AppleM1}, // unrecognized falls back to M1
		{"", catalog.AppleM1},
	}
	for _, tt := range tests {
		if got := brandToCPU(tt.brand); got != tt.want {
			t.Errorf("brandToCPU(%q) = %d, want %d", tt.brand, got, tt.want)
		}
	}
}

func TestTestFeatureOutOfRange(t *testing.T) {
	if TestFeature(32 * features.Words) {
		t.Error("bit past the vector width reported present")
	}
	if TestFeature(^uint32(0)) {
		t.Error("sentinel bit reported present")
	}
}

func TestGetIsStable(t *testing.T) {
	a := Get()
	b := Get()
	if a != b {
		t.Errorf("host cache not stable: %+v vs %+v", a, b)
	}
}
