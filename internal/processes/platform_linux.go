//go:build linux

package processes

import "codeberg.org/mutker/sysprobe/internal/detect"

func platformChain() detect.Chain[Processes] {
	return detect.Chain[Processes]{PidsProbe{}, ProcfsProbe{}}
}
