// Linux host discovery: auxiliary vector plus per-core CPUIDs.

//go:build linux && (arm || arm64)

package hostcpu

import (
	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"golang.org/x/sys/unix"
)

func platformDetect() Info {
	arch := elfArch()
	hwcap, hwcap2 := readAuxv("/proc/self/auxv")
	ids := readCPUIDs("/sys/devices/system/cpu", "/proc/cpuinfo")
	return detect(catalog.Native, arch, hwcap, hwcap2, ids)
}

// elfArch combines the compile-time architecture floor with the
// kernel's machine string, taking the higher version.
func elfArch() catalog.Arch {
	arch := catalog.NativeArch()
	if arch.Version >= 8 && arch.Profile == 'A' {
		return arch
	}
	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		m := catalog.ArchFromMachine(cString(uts.Machine[:]))
		if m.Version > arch.Version {
			arch.Version = m.Version
		}
		if arch.Profile == 0 {
			arch.Profile = m.Profile
		}
	}
	return arch
}

// cString truncates a NUL-terminated utsname field.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
