package dispatch

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hartyporpoise/armdispatch/internal/features"
)

// Image variant descriptor blob layout (all little-endian u32):
//
//	ntargets
//	per target:
//	  flags, base, nwords,
//	  enable words, disable words,
//	  name length + bytes, ext length + bytes
//
// nwords is written so readers can reject blobs produced with a
// different vector width.

var errTruncated = errors.New("truncated image target data")

// EncodeTargets serializes variant descriptors for embedding in an
// image.
func EncodeTargets(ts []Target) []byte {
	var buf bytes.Buffer
	w := func(v uint32) {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	w(uint32(len(ts)))
	for _, t := range ts {
		w(t.Enable.Flags)
		w(uint32(t.Base))
		w(features.Words)
		for _, word := range t.Enable.Features {
			w(word)
		}
		for _, word := range t.Disable.Features {
			w(word)
		}
		w(uint32(len(t.Name)))
		buf.WriteString(t.Name)
		w(uint32(len(t.ExtFeatures)))
		buf.WriteString(t.ExtFeatures)
	}
	return buf.Bytes()
}

// DecodeTargets deserializes variant descriptors delivered by the
// image reader.
func DecodeTargets(b []byte) ([]Target, error) {
	r := reader{buf: b}
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	ts := make([]Target, 0, n)
	for i := uint32(0); i < n; i++ {
		var t Target
		flags, err := r.u32()
		if err != nil {
			return nil, err
		}
		t.Enable.Flags = flags
		base, err := r.u32()
		if err != nil {
			return nil, err
		}
		t.Base = int(base)
		nwords, err := r.u32()
		if err != nil {
			return nil, err
		}
		if nwords != features.Words {
			return nil, fmt.Errorf("image target has %d feature words, want %d", nwords, features.Words)
		}
		for w := range t.Enable.Features {
			if t.Enable.Features[w], err = r.u32(); err != nil {
				return nil, err
			}
		}
		for w := range t.Disable.Features {
			if t.Disable.Features[w], err = r.u32(); err != nil {
				return nil, err
			}
		}
		if t.Name, err = r.str(); err != nil {
			return nil, err
		}
		if t.ExtFeatures, err = r.str(); err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) u32() (uint32, error) {
	if r.off+4 > len(r.buf) {
		return 0, errTruncated
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if r.off+int(n) > len(r.buf) {
		return "", errTruncated
	}
	s := string(r.buf[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}
