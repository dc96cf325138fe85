package hostcpu

import (
	"strings"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
)

// brandToCPU substring-matches Apple's marketing brand string
// ("Apple M2 Pro") to a catalog model. Unrecognized Apple silicon is
// treated as M1, the oldest model this detection path can encounter.
func brandToCPU(brand string) catalog.CPU {
	switch {
	case strings.Contains(brand, "M1"):
		return catalog.AppleM1
	case strings.Contains(brand, "M2"):
		return catalog.AppleM2
	case strings.Contains(brand, "M3"):
		return catalog.AppleM3
	case strings.Contains(brand, "M4"):
		return catalog.AppleM4
	}
	return catalog.AppleM1
}
