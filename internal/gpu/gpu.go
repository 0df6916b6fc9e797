// Package gpu detects graphics adapters.
package gpu

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/normalize"
)

// Domain is the cache key for GPU detection.
const Domain detect.Domain = "gpus"

// GPU is one graphics adapter. Nil pointer fields were not measured by the
// backend that reported the adapter.
type GPU struct {
	Vendor          normalize.Vendor  `json:"vendor"`
	Name            string            `json:"name"`
	Driver          string            `json:"driver"`
	Type            normalize.GPUType `json:"type"`
	DedicatedMemory *uint64           `json:"dedicated_memory"`
	Temperature     *float64          `json:"temperature"`
	CoreCount       *uint32           `json:"core_count"`
}

// New returns a GPU with every field explicitly unknown.
func New() GPU {
	return GPU{
		Vendor: normalize.VendorUnknown,
		Type:   normalize.GPUTypeUnknown,
	}
}

// SetVendorID classifies a PCI vendor ID with reg (nil means the built-in
// table).
func (g *GPU) SetVendorID(reg *normalize.Registry, id uint32) {
	g.Vendor = reg.Classify(id)
}

// SetDedicatedMemory records a measured dedicated memory size and derives
// the GPU type from it.
func (g *GPU) SetDedicatedMemory(bytes uint64) {
	g.DedicatedMemory = &bytes
	g.Type = normalize.ClassifyMemory(g.DedicatedMemory)
}

// SetTemperature records a measured temperature in degrees Celsius.
func (g *GPU) SetTemperature(celsius float64) {
	g.Temperature = &celsius
}

// SetCoreCount records a measured shader core count.
func (g *GPU) SetCoreCount(cores uint32) {
	g.CoreCount = &cores
}

// Platform returns the GPU backends for the running OS, most preferred
// first. reg classifies vendor IDs; nil means the built-in table.
func Platform(reg *normalize.Registry) detect.Chain[GPU] {
	return platformChain(reg)
}
