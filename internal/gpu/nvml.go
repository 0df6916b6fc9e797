package gpu

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/normalize"
)

// NVMLDevice holds the values read from one NVML device handle. Nil
// fields were not available from the driver.
type NVMLDevice struct {
	Name          string
	DriverVersion string
	// BusID is the PCI address, e.g. "0000:01:00.0".
	BusID       string
	PCIDeviceID *uint32
	MemoryTotal *uint64
	Temperature *uint32
	Cores       *int
}

// FromNVML converts an NVML reading. The PCI device ID carries the vendor
// in its low 16 bits.
func FromNVML(d NVMLDevice, reg *normalize.Registry) GPU {
	g := New()
	g.Name = d.Name
	g.Driver = d.DriverVersion

	if d.PCIDeviceID != nil {
		g.SetVendorID(reg, *d.PCIDeviceID&0xffff)
	}
	if g.Vendor == normalize.VendorUnknown {
		// NVML only enumerates NVIDIA hardware.
		g.Vendor = normalize.VendorNVIDIA
	}
	if d.MemoryTotal != nil {
		g.SetDedicatedMemory(*d.MemoryTotal)
	}
	if d.Temperature != nil {
		g.SetTemperature(float64(*d.Temperature))
	}
	if d.Cores != nil && *d.Cores > 0 {
		g.SetCoreCount(uint32(*d.Cores))
	}

	return g
}

// mergeNVML completes a sysfs record with the NVML reading of the same
// device. NVML values win where both sources have one.
func mergeNVML(g *GPU, d NVMLDevice, reg *normalize.Registry) {
	n := FromNVML(d, reg)

	if n.Name != "" {
		g.Name = n.Name
	}
	if n.Driver != "" {
		g.Driver = n.Driver
	}
	if n.DedicatedMemory != nil {
		g.SetDedicatedMemory(*n.DedicatedMemory)
	}
	if n.Temperature != nil {
		g.SetTemperature(*n.Temperature)
	}
	if n.CoreCount != nil {
		g.SetCoreCount(*n.CoreCount)
	}
}

// NormalizeBusID rewrites a PCI address to the sysfs form
// "dddd:bb:dd.f". NVML pads the domain to eight digits.
func NormalizeBusID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	domain, rest, ok := strings.Cut(s, ":")
	if !ok || strings.Count(rest, ":") != 1 {
		return s
	}

	var n uint32
	if _, err := fmt.Sscanf(domain, "%x", &n); err != nil {
		return s
	}

	return fmt.Sprintf("%04x:%s", n, rest)
}
