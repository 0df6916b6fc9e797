package gpu

import (
	"strconv"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/normalize"
)

// VideoController mirrors the Win32_VideoController properties the WMI
// backend selects.
type VideoController struct {
	Name                 string
	AdapterCompatibility string
	AdapterRAM           *uint32
	DriverVersion        string
	PNPDeviceID          string
}

// FromVideoController converts a WMI video controller. It returns false for
// software adapters, whose PnP IDs live under ROOT\.
func FromVideoController(vc VideoController, reg *normalize.Registry) (GPU, bool) {
	if strings.HasPrefix(strings.ToUpper(vc.PNPDeviceID), `ROOT\`) {
		return GPU{}, false
	}

	g := New()
	g.Name = vc.Name
	g.Driver = vc.DriverVersion

	if id, ok := normalize.ParsePCIVendorID(vc.PNPDeviceID); ok {
		g.SetVendorID(reg, id)
	}
	if g.Vendor == normalize.VendorUnknown {
		g.Vendor = normalize.VendorFromName(vc.AdapterCompatibility)
	}
	if vc.AdapterRAM != nil {
		g.SetDedicatedMemory(uint64(*vc.AdapterRAM))
	}

	return g, true
}

// FormatDriverVersion renders the packed DirectX driver version QWORD as
// four dot-separated 16-bit fields.
func FormatDriverVersion(v uint64) string {
	parts := make([]string, 4)
	for i := range parts {
		parts[i] = strconv.FormatUint((v>>(48-16*uint(i)))&0xffff, 10)
	}

	return strings.Join(parts, ".")
}
