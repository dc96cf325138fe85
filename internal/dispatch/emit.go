package dispatch

import (
	"strings"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"github.com/hartyporpoise/armdispatch/internal/features"
)

// versionAlias pairs a nominal version mark with the alias flag the
// backend expects. Emission order is newest first.
type versionAlias struct {
	bit  uint32
	flag string
}

var aarch64Ladder = []versionAlias{
	{catalog.A64V86A, "+v8.6a"},
	{catalog.A64V85A, "+v8.5a"},
	{catalog.A64V84A, "+v8.4a"},
	{catalog.A64V83A, "+v8.3a"},
	{catalog.A64V82A, "+v8.2a"},
	{catalog.A64V81A, "+v8.1a"},
}

var aarch32Ladder = []versionAlias{
	{catalog.A32V86A, "+v8.6a"},
	{catalog.A32V85A, "+v8.5a"},
	{catalog.A32V84A, "+v8.4a"},
	{catalog.A32V83A, "+v8.3a"},
	{catalog.A32V82A, "+v8.2a"},
	{catalog.A32V81A, "+v8.1a"},
}

// backendStrings renders a resolved target into the (cpu name, feature
// flags) pair the backend accepts. The name walks the fallback chain
// until the active backend knows it; generic architecture aliases fold
// their base features into the flags and emit as "generic". Enable
// flags always precede disable flags.
func (d *Dispatcher) backendStrings(t Target) (string, []string) {
	fam := d.fam
	name := t.Name
	spec := fam.FindCPUByName(name)
	for spec != nil && spec.MinBackend > d.backend {
		spec = fam.FindCPU(spec.Fallback)
		if spec != nil {
			name = spec.Name
		}
	}
	feats := t.Enable.Features
	if spec != nil && catalog.IsGeneric(spec.ID) {
		feats = feats.Union(spec.Features)
		name = "generic"
	}
	if !fam.AArch64 && name == "apple-a7" {
		// The 32-bit backend still knows this core by its old name.
		name = "cyclone"
	}

	var flags []string
	if fam.AArch64 {
		flags = append(flags, "+neon", "+fp-armv8")
		for _, va := range aarch64Ladder {
			if feats.Test(va.bit) {
				flags = append(flags, va.flag)
			}
		}
	} else {
		for _, va := range aarch32Ladder {
			if feats.Test(va.bit) {
				flags = append(flags, va.flag)
			}
		}
		if feats.Test(catalog.A32V8MMain) {
			flags = append(flags, "+v8m.main", "+armv8-m.main")
		}
		if feats.Test(catalog.A32AClass) {
			flags = append(flags, "+aclass")
		}
		if feats.Test(catalog.A32RClass) {
			flags = append(flags, "+rclass")
		}
		if feats.Test(catalog.A32MClass) {
			flags = append(flags, "+mclass")
		}
		if feats.Test(catalog.A32V8) {
			flags = append(flags, "+v8")
			switch {
			case feats.Test(catalog.A32AClass):
				flags = append(flags, "+armv8-a")
			case feats.Test(catalog.A32RClass):
				flags = append(flags, "+armv8-r")
			case feats.Test(catalog.A32MClass):
				flags = append(flags, "+v8m", "+armv8-m.base")
			}
		}
		if feats.Test(catalog.A32V7) {
			flags = append(flags, "+v7")
			switch {
			case feats.Test(catalog.A32AClass):
				flags = append(flags, "+armv7-a")
			case feats.Test(catalog.A32RClass):
				flags = append(flags, "+armv7-r")
			case feats.Test(catalog.A32MClass):
				flags = append(flags, "+armv7-m")
			}
		}
		flags = append(flags, "+v6", "+vfp2")
	}

	// Baseline flags already forced on above must not be contradicted
	// by a trailing "-" entry; the backend resolves the list
	// left-to-right with the last entry winning.
	forced := make(map[string]bool, len(flags))
	for _, fl := range flags {
		forced[fl[1:]] = true
	}
	var minus []string
	for _, fn := range fam.Features {
		if fn.Bit >= 64 {
			break
		}
		if fn.MinBackend > d.backend {
			continue
		}
		if feats.Test(fn.Bit) {
			flags = append(flags, "+"+fn.Name)
		} else if t.Disable.Features.Test(fn.Bit) && !forced[fn.Name] {
			minus = append(minus, "-"+fn.Name)
		}
	}
	return name, append(flags, minus...)
}

// appendExt appends the target's verbatim backend flags.
func appendExt(flags []string, ext string) []string {
	if ext == "" {
		return flags
	}
	return append(flags, strings.Split(ext, ",")...)
}

// BackendTarget resolves the command line if needed and returns the
// backend CPU name, feature flags, and the first target's directive
// flags.
func (d *Dispatcher) BackendTarget(cpuTarget string) (string, []string, uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ensureLocked(cpuTarget); err != nil {
		return "", nil, 0, err
	}
	t := d.jit[0]
	name, flags := d.backendStrings(t)
	return name, appendExt(flags, t.ExtFeatures), t.Enable.Flags, nil
}

// JoinFeatures renders a flag list into the comma-joined form backends
// take as a single string.
func JoinFeatures(flags []string) string {
	return strings.Join(flags, ",")
}

// disasmExtAArch64 enables system and profiling extensions the feature
// catalog does not track, so the disassembler accepts everything the
// hardware might run.
const disasmExtAArch64 = "+ecv,+tme,+am,+specrestrict,+predres,+lor,+perfmon,+spe,+tracev8.4"

const disasmExtAArch32 = "+dotprod"

// DisasmTarget returns a backend target enabling every feature the JIT
// could ever emit for this architecture, for use by the disassembler.
func (d *Dispatcher) DisasmTarget() (string, string) {
	fam := d.fam
	maxF := d.maxFeatures()
	t := Target{
		Name:        d.hostName(),
		Enable:      Settings{Features: maxF},
		Disable:     Settings{Features: fam.Mask.AndNot(maxF)},
		ExtFeatures: disasmExtAArch32,
	}
	if fam.AArch64 {
		t.ExtFeatures = disasmExtAArch64
	}
	name, flags := d.backendStrings(t)
	return name, JoinFeatures(appendExt(flags, t.ExtFeatures))
}

// maxFeatures is the widest self-consistent feature set for the
// family. AArch64 has no conflicting features; AArch32 assumes the
// A profile, where every version mark can be enabled at once.
func (d *Dispatcher) maxFeatures() features.List {
	if d.fam.AArch64 {
		return d.fam.Mask
	}
	f := d.fam.RealMask
	for _, bit := range []uint32{
		catalog.A32AClass, catalog.A32V7, catalog.A32V8,
		catalog.A32V81A, catalog.A32V82A, catalog.A32V83A,
		catalog.A32V84A, catalog.A32V85A, catalog.A32V86A,
	} {
		f.Set(bit)
	}
	return f
}
