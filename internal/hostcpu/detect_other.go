// Fallback for platforms without a discovery source: report a generic
// CPU with no features rather than failing.

//go:build !darwin && !(linux && (arm || arm64))

package hostcpu

import "github.com/hartyporpoise/armdispatch/internal/catalog"

func platformDetect() Info {
	fam := catalog.Native
	return Info{CPU: fam.GenericFor(catalog.NativeArch())}
}
