// Package sysinfo is the entry point for detection. A Detector owns one
// cache, so every domain is probed at most once per Detector.
package sysinfo

import (
	"strings"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/display"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/gpu"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"codeberg.org/mutker/sysprobe/internal/processes"
)

// Detector runs the platform backends of each domain and caches the
// results.
type Detector struct {
	cache    *detect.Cache
	registry *normalize.Registry
	disabled []string

	displayChain detect.Chain[display.Display]
	gpuChain     detect.Chain[gpu.GPU]
	processChain detect.Chain[processes.Processes]
}

type Option func(*Detector)

// WithRegistry classifies GPU vendor IDs with reg instead of the built-in
// table.
func WithRegistry(reg *normalize.Registry) Option {
	return func(d *Detector) {
		d.registry = reg
	}
}

// WithDisabledBackends skips backends by name. A plain name such as "drm"
// applies to every domain; "gpus:drm" applies to one.
func WithDisabledBackends(names ...string) Option {
	return func(d *Detector) {
		d.disabled = append(d.disabled, names...)
	}
}

// WithDisplayBackends replaces the platform display chain.
func WithDisplayBackends(chain detect.Chain[display.Display]) Option {
	return func(d *Detector) {
		d.displayChain = chain
	}
}

// WithGPUBackends replaces the platform GPU chain.
func WithGPUBackends(chain detect.Chain[gpu.GPU]) Option {
	return func(d *Detector) {
		d.gpuChain = chain
	}
}

// WithProcessBackends replaces the platform process-count chain.
func WithProcessBackends(chain detect.Chain[processes.Processes]) Option {
	return func(d *Detector) {
		d.processChain = chain
	}
}

func New(opts ...Option) *Detector {
	d := &Detector{cache: detect.NewCache()}
	for _, opt := range opts {
		opt(d)
	}

	if d.displayChain == nil {
		d.displayChain = display.Platform()
	}
	if d.gpuChain == nil {
		d.gpuChain = gpu.Platform(d.registry)
	}
	if d.processChain == nil {
		d.processChain = processes.Platform()
	}

	return d
}

// Displays returns the connected screens.
func (d *Detector) Displays() *detect.Result[display.Display] {
	return detect.Get(d.cache, display.Domain, d.displayChain.Without(d.disabledFor(display.Domain)...))
}

// GPUs returns the graphics adapters.
func (d *Detector) GPUs() *detect.Result[gpu.GPU] {
	return detect.Get(d.cache, gpu.Domain, d.gpuChain.Without(d.disabledFor(gpu.Domain)...))
}

// Processes returns the process-count result.
func (d *Detector) Processes() *detect.Result[processes.Processes] {
	return detect.Get(d.cache, processes.Domain, d.processChain.Without(d.disabledFor(processes.Domain)...))
}

// ProcessCount returns the number of running processes, or 0 and an error
// when no backend could count them.
func (d *Detector) ProcessCount() (uint32, error) {
	return processes.FromResult(d.Processes())
}

// Detected reports whether domain has already been probed.
func (d *Detector) Detected(domain detect.Domain) bool {
	return d.cache.Detected(domain)
}

// Backends lists the backend names that will run for domain.
func (d *Detector) Backends(domain detect.Domain) []string {
	disabled := d.disabledFor(domain)

	switch domain {
	case display.Domain:
		return d.displayChain.Without(disabled...).Names()
	case gpu.Domain:
		return d.gpuChain.Without(disabled...).Names()
	case processes.Domain:
		return d.processChain.Without(disabled...).Names()
	default:
		return nil
	}
}

func (d *Detector) disabledFor(domain detect.Domain) []string {
	var names []string
	for _, name := range d.disabled {
		scope, backend, scoped := strings.Cut(name, ":")
		switch {
		case !scoped:
			names = append(names, name)
		case detect.Domain(scope) == domain:
			names = append(names, backend)
		}
	}

	return names
}

// Domains lists every domain a Detector can probe.
func Domains() []detect.Domain {
	return []detect.Domain{display.Domain, gpu.Domain, processes.Domain}
}

// ParseDomain validates a domain name.
func ParseDomain(name string) (detect.Domain, error) {
	domain := detect.Domain(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Domains() {
		if domain == known {
			return domain, nil
		}
	}

	return "", errors.New().New(errors.ErrInvalidDomain).WithData(name)
}
