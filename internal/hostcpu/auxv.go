package hostcpu

import (
	"encoding/binary"
	"os"
)

// Auxiliary vector entry types (sys/auxv.h).
const (
	atHWCAP  = 16
	atHWCAP2 = 26
)

// uintSize is the entry word size of the process's auxiliary vector:
// 32 on 32-bit kern's ABIs, 64 on 64-bit ones.
const uintSize = 32 << (^uint(0) >> 63)

// readAuxv parses path (normally /proc/self/auxv) as a stream of
// (type, value) machine words terminated by a zero-type entry and
// returns the low 32 bits of HWCAP and HWCAP2. Entries that are
// missing, and files that cannot be read, report zero.
func readAuxv(path string) (hwcap, hwcap2 uint32) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return 0, 0
	}
	bo := binary.LittleEndian
	for len(buf) >= 2*(uintSize/8) {
		var tag, val uint64
		switch uintSize {
		case 32:
			tag = uint64(bo.Uint32(buf[0:]))
			val = uint64(bo.Uint32(buf[4:]))
			buf = buf[8:]
		case 64:
			tag = bo.Uint64(buf[0:])
			val = bo.Uint64(buf[8:])
			buf = buf[16:]
		}
		switch tag {
		case 0:
			return hwcap, hwcap2
		case atHWCAP:
			hwcap = uint32(val)
		case atHWCAP2:
			hwcap2 = uint32(val)
		}
	}
	return hwcap, hwcap2
}
