package sysinfo

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/display"
	"codeberg.org/mutker/sysprobe/internal/gpu"
	"codeberg.org/mutker/sysprobe/internal/processes"
)

// DomainReport is the serializable view of one domain's result.
type DomainReport[T any] struct {
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`
}

func newDomainReport[T any](result *detect.Result[T]) *DomainReport[T] {
	return &DomainReport[T]{
		Items: result.Items(),
		Error: result.ErrorText(),
	}
}

// Report holds the results of the requested domains. Domains that were not
// requested are nil.
type Report struct {
	Displays  *DomainReport[display.Display]     `json:"displays,omitempty"`
	GPUs      *DomainReport[gpu.GPU]             `json:"gpus,omitempty"`
	Processes *DomainReport[processes.Processes] `json:"processes,omitempty"`
}

// Report probes the given domains, in order, and collects their results.
// Unknown domains are ignored.
func (d *Detector) Report(domains []detect.Domain) Report {
	var r Report
	for _, domain := range domains {
		switch domain {
		case display.Domain:
			r.Displays = newDomainReport(d.Displays())
		case gpu.Domain:
			r.GPUs = newDomainReport(d.GPUs())
		case processes.Domain:
			r.Processes = newDomainReport(d.Processes())
		}
	}

	return r
}
