package sysinfo_test

import (
	"encoding/json"
	"sync/atomic"
	"testing"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/display"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/gpu"
	"codeberg.org/mutker/sysprobe/internal/processes"
	"codeberg.org/mutker/sysprobe/internal/sysinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func displayBackend(name string, calls *atomic.Int32, displays ...display.Display) detect.Probe[display.Display] {
	return detect.ProbeFunc(name, func(list *detect.List[display.Display]) error {
		calls.Add(1)
		for _, d := range displays {
			display.Append(list, d)
		}

		return nil
	})
}

func TestDisplaysAreProbedOnce(t *testing.T) {
	var calls atomic.Int32
	d := sysinfo.New(sysinfo.WithDisplayBackends(detect.Chain[display.Display]{
		displayBackend("fake", &calls, display.Display{Width: 1920, Height: 1080, RefreshRate: 60}),
	}))

	assert.False(t, d.Detected(display.Domain))

	first := d.Displays()
	second := d.Displays()

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, d.Detected(display.Domain))
	require.Equal(t, 1, first.Len())
	assert.Equal(t, uint32(1920), first.At(0).Width)
}

func TestDetectorsDoNotShareCache(t *testing.T) {
	var calls atomic.Int32
	chain := detect.Chain[display.Display]{displayBackend("fake", &calls)}

	sysinfo.New(sysinfo.WithDisplayBackends(chain)).Displays()
	sysinfo.New(sysinfo.WithDisplayBackends(chain)).Displays()

	assert.Equal(t, int32(2), calls.Load())
}

func TestDisabledBackends(t *testing.T) {
	var drmCalls, xrandrCalls atomic.Int32
	displays := detect.Chain[display.Display]{
		displayBackend("xrandr", &xrandrCalls, display.Display{Width: 800, Height: 600}),
		displayBackend("drm", &drmCalls, display.Display{Width: 1024, Height: 768}),
	}

	d := sysinfo.New(
		sysinfo.WithDisplayBackends(displays),
		sysinfo.WithDisabledBackends("displays:xrandr", "gpus:drm"),
	)

	assert.Equal(t, []string{"drm"}, d.Backends(display.Domain))

	result := d.Displays()
	require.Equal(t, 1, result.Len())
	assert.Equal(t, uint32(1024), result.At(0).Width)
	assert.Zero(t, xrandrCalls.Load())
	assert.Equal(t, int32(1), drmCalls.Load())
}

func TestDisablingEveryBackendFails(t *testing.T) {
	d := sysinfo.New(
		sysinfo.WithProcessBackends(detect.Chain[processes.Processes]{
			processes.PidsProbe{Pids: func() ([]int32, error) { return []int32{1}, nil }},
		}),
		sysinfo.WithDisabledBackends("gopsutil"),
	)

	count, err := d.ProcessCount()

	assert.Zero(t, count)
	assert.True(t, errors.HasCode(err, detect.ErrNoProbes))
}

func TestProcessCount(t *testing.T) {
	d := sysinfo.New(sysinfo.WithProcessBackends(detect.Chain[processes.Processes]{
		processes.PidsProbe{Pids: func() ([]int32, error) { return []int32{1, 2, 3}, nil }},
	}))

	count, err := d.ProcessCount()

	require.NoError(t, err)
	assert.Equal(t, uint32(3), count)
	assert.True(t, d.Detected(processes.Domain))
}

func TestParseDomain(t *testing.T) {
	for _, name := range []string{"displays", "GPUs", " processes "} {
		_, err := sysinfo.ParseDomain(name)
		assert.NoError(t, err, name)
	}

	_, err := sysinfo.ParseDomain("battery")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidDomain))
}

func TestReport(t *testing.T) {
	failing := detect.ProbeFunc("nvml", func(*detect.List[gpu.GPU]) error {
		return errors.New().WithMessage(gpu.ErrInitFailed, "NVML library not found")
	})

	var calls atomic.Int32
	d := sysinfo.New(
		sysinfo.WithDisplayBackends(detect.Chain[display.Display]{
			displayBackend("fake", &calls, display.Display{Width: 2560, Height: 1440, RefreshRate: 144}),
		}),
		sysinfo.WithGPUBackends(detect.Chain[gpu.GPU]{failing}),
	)

	report := d.Report([]detect.Domain{display.Domain, gpu.Domain})

	require.NotNil(t, report.Displays)
	assert.Len(t, report.Displays.Items, 1)
	assert.Empty(t, report.Displays.Error)
	require.NotNil(t, report.GPUs)
	assert.Empty(t, report.GPUs.Items)
	assert.Contains(t, report.GPUs.Error, "NVML library not found")
	assert.Nil(t, report.Processes)
	assert.False(t, d.Detected(processes.Domain))

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "processes")
	assert.Equal(t, []any{}, decoded["gpus"]["items"])
}
