//go:build windows

package gpu

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"github.com/yusufpapurcu/wmi"
)

const videoControllerQuery = "SELECT Name, AdapterCompatibility, AdapterRAM, DriverVersion, PNPDeviceID FROM Win32_VideoController"

// WMIProbe lists physical video controllers through WMI.
type WMIProbe struct {
	Registry *normalize.Registry
}

func (WMIProbe) Name() string {
	return "wmi"
}

func (p WMIProbe) Probe(list *detect.List[GPU]) error {
	var controllers []VideoController
	if err := wmi.Query(videoControllerQuery, &controllers); err != nil {
		return errors.New().Wrap(ErrWMIQuery, err)
	}

	for _, vc := range controllers {
		if g, ok := FromVideoController(vc, p.Registry); ok {
			list.Append(g)
		}
	}

	return nil
}
