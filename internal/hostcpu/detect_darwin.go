// Darwin host discovery via the vendor brand-string sysctl.

//go:build darwin

package hostcpu

import (
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
)

func platformDetect() Info {
	if runtime.GOARCH != "arm64" {
		// The brand string only identifies Apple silicon; other Macs
		// degrade to generic like any host without a discovery source.
		return Info{CPU: catalog.Native.GenericFor(catalog.NativeArch())}
	}
	brand, err := unix.Sysctl("machdep.cpu.brand_string")
	if err != nil {
		brand = ""
	}
	cpu := brandToCPU(brand)
	return Info{CPU: cpu, Features: catalog.AArch64.FindCPU(cpu).Features}
}
