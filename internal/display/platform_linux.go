//go:build linux

package display

import "codeberg.org/mutker/sysprobe/internal/detect"

func platformChain() detect.Chain[Display] {
	return detect.Chain[Display]{
		XrandrProbe{},
		DRMProbe{},
	}
}
