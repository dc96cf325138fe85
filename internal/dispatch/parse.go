package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"github.com/hartyporpoise/armdispatch/internal/features"
)

// ParseTargets parses a user target string: semicolons separate
// targets, commas separate per-target modifiers. Each target is a CPU
// name followed by any of +feat, -feat, clone_all, base=N, or
// ext=<backend flags>. Unknown feature names fail the whole parse.
func ParseTargets(fam *catalog.Family, s string) ([]Target, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("empty target string")
	}
	var out []Target
	for _, spec := range strings.Split(s, ";") {
		parts := strings.Split(spec, ",")
		name := strings.TrimSpace(parts[0])
		if name == "" || name[0] == '+' || name[0] == '-' {
			return nil, fmt.Errorf("invalid target %q: expected a CPU name first", spec)
		}
		t := Target{Name: catalog.NormalizeName(name)}
		for _, mod := range parts[1:] {
			mod = strings.TrimSpace(mod)
			switch {
			case mod == "clone_all":
				t.Enable.Flags |= CloneAll
			case strings.HasPrefix(mod, "base="):
				n, err := strconv.Atoi(strings.TrimPrefix(mod, "base="))
				if err != nil || n < 0 {
					return nil, fmt.Errorf("invalid base index %q", mod)
				}
				t.Base = n
			case strings.HasPrefix(mod, "ext="):
				ext := strings.TrimPrefix(mod, "ext=")
				if t.ExtFeatures == "" {
					t.ExtFeatures = ext
				} else {
					t.ExtFeatures += "," + ext
				}
			case strings.HasPrefix(mod, "+"):
				if err := setFeature(fam, &t.Enable.Features, mod[1:]); err != nil {
					return nil, err
				}
			case strings.HasPrefix(mod, "-"):
				if err := setFeature(fam, &t.Disable.Features, mod[1:]); err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("invalid target option %q", mod)
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// setFeature sets the named feature's bit in l. On AArch64 "crypto" is
// an alias for aes+sha2, expanded here and never stored as one bit.
func setFeature(fam *catalog.Family, l *features.List, name string) error {
	if name == "" {
		return errors.New("empty feature name")
	}
	if fam.AArch64 && name == "crypto" {
		l.Set(catalog.A64AES)
		l.Set(catalog.A64SHA2)
		return nil
	}
	bit := fam.FindFeatureBit(name)
	if bit == features.NotFound {
		return fmt.Errorf("unknown feature name %q", name)
	}
	l.Set(bit)
	return nil
}

// CheckTargets validates cross-target constraints: the first target is
// the required host baseline (no clone_all, base 0) and every other
// target's base must reference an earlier target.
func CheckTargets(ts []Target) error {
	if len(ts) == 0 {
		return errors.New("no targets specified")
	}
	if ts[0].Enable.Flags&CloneAll != 0 {
		return errors.New("the first target cannot have clone_all")
	}
	if ts[0].Base != 0 {
		return errors.New("the first target cannot have a base")
	}
	for i := 1; i < len(ts); i++ {
		if ts[i].Base >= i {
			return fmt.Errorf("target %d: base index %d does not reference an earlier target", i, ts[i].Base)
		}
	}
	return nil
}
