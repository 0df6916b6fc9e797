//go:build linux

package gpu

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/normalize"
)

func platformChain(reg *normalize.Registry) detect.Chain[GPU] {
	return detect.Chain[GPU]{
		DRMProbe{Registry: reg, NVMLDevices: ListNVMLDevices},
		NVMLProbe{Registry: reg},
	}
}
