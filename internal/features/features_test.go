package features

import "testing"

func TestListOps(t *testing.T) {
	tests := []struct {
		name string
		op   func() List
		want List
	}{
		{
			name: "make_addresses_words",
			op:   func() List { return Make(0, 31, 32, 63, 64, 95) },
			want: List{1 | 1<<31, 1 | 1<<31, 1 | 1<<31},
		},
		{
			name: "union",
			op:   func() List { return Make(1, 2).Union(Make(2, 40)) },
			want: Make(1, 2, 40),
		},
		{
			name: "intersect",
			op:   func() List { return Make(1, 2, 40).Intersect(Make(2, 40, 70)) },
			want: Make(2, 40),
		},
		{
			name: "andnot",
			op:   func() List { return Make(1, 2, 40).AndNot(Make(2)) },
			want: Make(1, 40),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutOfRangeBits(t *testing.T) {
	var l List
	l.Set(32 * Words) // ignored
	l.Set(^uint32(0)) // ignored
	if !l.IsZero() {
		t.Errorf("out-of-range Set modified the list: %v", l)
	}
	if l.Test(32 * Words) {
		t.Error("out-of-range Test reported a set bit")
	}
	l.Clear(1000) // must not panic
}

func TestSubsetAndCount(t *testing.T) {
	a := Make(1, 40, 70)
	if !a.Subset(a) {
		t.Error("a not subset of itself")
	}
	if !Make(40).Subset(a) {
		t.Error("{40} not subset of {1,40,70}")
	}
	if a.Subset(Make(40)) {
		t.Error("{1,40,70} reported subset of {40}")
	}
	if got := a.Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestFindBit(t *testing.T) {
	names := []Name{{Name: "aes", Bit: 3}, {Name: "sha2", Bit: 6}}
	if got := FindBit(names, "sha2"); got != 6 {
		t.Errorf("FindBit(sha2) = %d, want 6", got)
	}
	if got := FindBit(names, "nope"); got != NotFound {
		t.Errorf("FindBit(nope) = %d, want NotFound", got)
	}
}

// A diamond-shaped edge set: 3 needs 2, 2 needs 1, 3 also needs 0.
var diamondDeps = []Dep{
	{Bit: 3, Requires: 2},
	{Bit: 2, Requires: 1},
	{Bit: 3, Requires: 0},
}

func TestEnableDepends(t *testing.T) {
	tests := []struct {
		name string
		in   List
		want List
	}{
		{"top_pulls_everything", Make(3), Make(0, 1, 2, 3)},
		{"middle_pulls_chain", Make(2), Make(1, 2)},
		{"independent_bit_untouched", Make(40), Make(40)},
		{"empty", List{}, List{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			EnableDepends(&got, diamondDeps)
			if got != tt.want {
				t.Errorf("EnableDepends(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.in.Subset(got) {
				t.Error("enable closure dropped bits")
			}
			again := got
			EnableDepends(&again, diamondDeps)
			if again != got {
				t.Errorf("enable closure not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestDisableDepends(t *testing.T) {
	tests := []struct {
		name string
		in   List
		want List
	}{
		{"missing_root_clears_chain", Make(2, 3), List{}},
		{"complete_chain_survives", Make(0, 1, 2, 3), Make(0, 1, 2, 3)},
		{"missing_side_clears_top_only", Make(1, 2, 3), Make(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			DisableDepends(&got, diamondDeps)
			if got != tt.want {
				t.Errorf("DisableDepends(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !got.Subset(tt.in) {
				t.Error("disable closure added bits")
			}
			again := got
			DisableDepends(&again, diamondDeps)
			if again != got {
				t.Errorf("disable closure not idempotent: %v then %v", got, again)
			}
		})
	}
}
