package gpu

import (
	"strconv"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"codeberg.org/mutker/sysprobe/internal/sysprofiler"
)

// SystemProfilerProbe reads adapters from the macOS display report.
type SystemProfilerProbe struct {
	// Report returns the decoded report. Nil runs system_profiler.
	Report   func() (*sysprofiler.Report, error)
	Registry *normalize.Registry
}

func (SystemProfilerProbe) Name() string {
	return "system_profiler"
}

func (p SystemProfilerProbe) Probe(list *detect.List[GPU]) error {
	load := p.Report
	if load == nil {
		load = sysprofiler.Run
	}

	report, err := load()
	if err != nil {
		return err
	}

	for _, adapter := range report.Adapters {
		list.Append(FromAdapter(adapter, p.Registry))
	}

	return nil
}

// FromAdapter converts a system_profiler adapter. Built-in adapters without
// a VRAM figure share system memory and are reported as integrated.
func FromAdapter(a sysprofiler.Adapter, reg *normalize.Registry) GPU {
	g := New()
	g.Name = a.Model

	vendor := a.VendorString()
	if hex, ok := sysprofiler.VendorID(vendor); ok {
		if id, ok := normalize.ParsePCIVendorID(hex); ok {
			g.SetVendorID(reg, id)
		}
	}
	if g.Vendor == normalize.VendorUnknown {
		g.Vendor = normalize.VendorFromName(vendor)
	}

	if vram, ok := sysprofiler.ParseVRAM(a.VRAMString()); ok {
		g.SetDedicatedMemory(vram)
	} else if a.Bus == sysprofiler.BusBuiltin {
		g.Type = normalize.GPUTypeIntegrated
	}

	if cores, err := strconv.ParseUint(a.Cores, 10, 32); err == nil {
		g.SetCoreCount(uint32(cores))
	}

	return g
}
