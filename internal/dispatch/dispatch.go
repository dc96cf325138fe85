// Package dispatch turns user target strings into resolved
// multi-version compile targets, picks the best-matching variant out
// of precompiled images, and renders targets into the form the
// compiler backend accepts.
package dispatch

import (
	"errors"
	"sync"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"github.com/hartyporpoise/armdispatch/internal/features"
	"github.com/hartyporpoise/armdispatch/internal/hostcpu"
)

// Target directive flags. The bit assignments are fixed by the image
// ABI; they are stored in serialized variant descriptors.
const (
	// VecCall marks a variant whose function ABI passes vectors in
	// registers; caller and callee must agree on the register size.
	VecCall uint32 = 1 << 0

	// CloneAll clones every function for this target.
	CloneAll uint32 = 1 << 1

	// CloneLoop clones functions containing loops.
	CloneLoop uint32 = 1 << 2

	// CloneSIMD clones functions using vector types.
	CloneSIMD uint32 = 1 << 3

	// CloneMath clones functions calling math intrinsics.
	CloneMath uint32 = 1 << 4

	// CloneCPU clones functions that query CPU features.
	CloneCPU uint32 = 1 << 5

	// CloneFloat16 clones functions using half-precision floats.
	CloneFloat16 uint32 = 1 << 6

	// UnknownName records that the requested CPU name was not in the
	// catalog; resolution continued without base features.
	UnknownName uint32 = 1 << 7
)

// Init-order violations. These are fatal to the process: the caller is
// expected to abort on them, not retry.
var (
	ErrAlreadyInitialized = errors.New("jit targets already initialized")
	ErrNotInitialized     = errors.New("jit targets not initialized")
	ErrTooManyTargets     = errors.New("expected only one jit target")
)

// Settings is one direction (enable or disable) of a target's feature
// selection.
type Settings struct {
	Features features.List
	Flags    uint32
}

// Target is one multi-version compile target, parsed or resolved.
type Target struct {
	// Name is the CPU name, already normalized.
	Name string

	// Base indexes the target whose feature diff drives clone
	// decisions. The first target is always its own base.
	Base int

	// Enable holds features to turn on plus directive flags.
	Enable Settings

	// Disable holds features to turn off.
	Disable Settings

	// ExtFeatures is passed to the backend verbatim, after the
	// catalog-driven flags.
	ExtFeatures string
}

// Dispatcher owns the process's JIT target list and the backend
// version it compiles for. The list is built lazily on first use and
// frozen afterwards; re-initialization fails.
type Dispatcher struct {
	fam     *catalog.Family
	backend uint32

	// host and hostName default to the real host cache; tests swap in
	// synthetic hosts.
	host     func() hostcpu.Info
	hostName func() string

	mu  sync.Mutex
	jit []Target
}

// New creates a Dispatcher for the given family and backend version.
func New(fam *catalog.Family, backendVersion uint32) *Dispatcher {
	return &Dispatcher{
		fam:      fam,
		backend:  backendVersion,
		host:     hostcpu.Get,
		hostName: hostcpu.Name,
	}
}

// JITTargets returns a copy of the resolved JIT target list, empty if
// none has been established yet.
func (d *Dispatcher) JITTargets() []Target {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Target, len(d.jit))
	copy(out, d.jit)
	return out
}

// HasFMA reports whether fused multiply-add is available at the given
// float width (32 or 64) for the active JIT target. Every AArch64 core
// has it; on AArch32 it needs VFPv4 (or its single-precision subset
// for 32-bit).
func (d *Dispatcher) HasFMA(bits int) bool {
	if d.fam.AArch64 {
		return true
	}
	d.mu.Lock()
	var f features.List
	if len(d.jit) > 0 {
		f = d.jit[0].Enable.Features
	} else {
		f = d.host().Features
	}
	d.mu.Unlock()
	if bits == 32 && f.Test(catalog.A32VFP4SP) {
		return true
	}
	return (bits == 32 || bits == 64) && f.Test(catalog.A32VFP4)
}
