package display

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"codeberg.org/mutker/sysprobe/internal/sysprofiler"
)

// SystemProfilerProbe reads screens from the macOS display report.
type SystemProfilerProbe struct {
	// Report returns the decoded report. Nil runs system_profiler.
	Report func() (*sysprofiler.Report, error)
}

func (SystemProfilerProbe) Name() string {
	return "system_profiler"
}

func (p SystemProfilerProbe) Probe(list *detect.List[Display]) error {
	load := p.Report
	if load == nil {
		load = sysprofiler.Run
	}

	report, err := load()
	if err != nil {
		return err
	}

	for _, adapter := range report.Adapters {
		for _, screen := range adapter.Screens {
			appendScreen(list, screen)
		}
	}

	return nil
}

func appendScreen(list *detect.List[Display], screen sysprofiler.Screen) bool {
	scaledWidth, scaledHeight, hz, hasResolution := sysprofiler.ParseDimensions(screen.Resolution)

	width, height, _, ok := sysprofiler.ParseDimensions(screen.Pixels)
	if !ok {
		width, height = scaledWidth, scaledHeight
	}
	if !hasResolution {
		scaledWidth, scaledHeight = width, height
	}

	return Append(list, Display{
		Name:         screen.Name,
		Width:        width,
		Height:       height,
		RefreshRate:  normalize.RefreshRateHz(hz),
		ScaledWidth:  scaledWidth,
		ScaledHeight: scaledHeight,
		Primary:      screen.Main == sysprofiler.MainYes,
	})
}
