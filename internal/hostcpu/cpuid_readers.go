package hostcpu

import (
	"bufio"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
)

// readCPUIDs collects the per-core identification records, preferring
// the sysfs MIDR_EL1 registers (64-bit 4.7+ kernels) and falling back
// to /proc/cpuinfo. Duplicates are removed and the result is sorted by
// (implementer, part, variant).
func readCPUIDs(sysfsCPUDir, cpuinfoPath string) []catalog.CPUID {
	ids := readSysfsMIDR(sysfsCPUDir)
	if len(ids) == 0 {
		ids = readProcCPUInfo(cpuinfoPath)
	}
	slices.SortFunc(ids, func(a, b catalog.CPUID) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})
	return slices.Compact(ids)
}

// readSysfsMIDR parses cpu*/regs/identification/midr_el1 under dir,
// each a 64-bit hex MIDR_EL1 value.
func readSysfsMIDR(dir string) []catalog.CPUID {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var ids []catalog.CPUID
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "cpu") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name(), "regs", "identification", "midr_el1"))
		if err != nil {
			continue
		}
		s := strings.TrimSpace(string(raw))
		s = strings.TrimPrefix(s, "0x")
		val, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			continue
		}
		ids = append(ids, catalog.CPUID{
			Implementer: uint8(val >> 24),
			Variant:     uint8((val >> 20) & 0xf),
			Part:        uint16((val >> 4) & 0xfff),
		})
	}
	return ids
}

// readProcCPUInfo parses /proc/cpuinfo blocks separated by blank
// lines. A block contributes a CPUID only when at least the
// implementer and part fields are present.
func readProcCPUInfo(path string) []catalog.CPUID {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var ids []catalog.CPUID
	var cur catalog.CPUID
	var haveImpl, havePart bool
	flush := func() {
		if haveImpl && havePart {
			ids = append(ids, cur)
		}
		cur = catalog.CPUID{}
		haveImpl, havePart = false, false
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "CPU implementer":
			if n, err := parseCPUInfoInt(val); err == nil {
				cur.Implementer = uint8(n)
				haveImpl = true
			}
		case "CPU variant":
			if n, err := parseCPUInfoInt(val); err == nil {
				cur.Variant = uint8(n)
			}
		case "CPU part":
			if n, err := parseCPUInfoInt(val); err == nil {
				cur.Part = uint16(n)
				havePart = true
			}
		}
	}
	flush()
	return ids
}

// parseCPUInfoInt accepts the kernel's mix of hex ("0x41") and decimal
// field values.
func parseCPUInfoInt(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 16)
}
