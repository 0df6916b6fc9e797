//go:build darwin

package gpu

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/normalize"
)

func platformChain(reg *normalize.Registry) detect.Chain[GPU] {
	return detect.Chain[GPU]{
		SystemProfilerProbe{Registry: reg},
	}
}
