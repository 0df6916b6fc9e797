package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/sysprobe/internal/config"
	"codeberg.org/mutker/sysprobe/internal/display"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/gpu"
	"codeberg.org/mutker/sysprobe/internal/logger"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"codeberg.org/mutker/sysprobe/internal/processes"
	"codeberg.org/mutker/sysprobe/internal/sysinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name string
		d    display.Display
		want string
	}{
		{
			name: "scaled primary",
			d:    display.Display{Name: "DP-1", Width: 3840, Height: 2160, RefreshRate: 60, ScaledWidth: 1920, ScaledHeight: 1080, Primary: true},
			want: "DP-1 3840x2160 @ 60 Hz (as 1920x1080) [Primary]",
		},
		{
			name: "unknown refresh",
			d:    display.Display{Width: 1920, Height: 1080, ScaledWidth: 1920, ScaledHeight: 1080},
			want: "1920x1080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDisplay(tt.d))
		})
	}
}

func TestFormatGPU(t *testing.T) {
	full := gpu.New()
	full.Name = "GeForce RTX 3060"
	full.Vendor = normalize.VendorNVIDIA
	full.Driver = "550.54.14"
	full.SetDedicatedMemory(12 << 30)
	full.SetTemperature(54)
	full.SetCoreCount(3584)

	assert.Equal(t,
		"NVIDIA GeForce RTX 3060 (3584 cores) - 54.0°C - 12 GiB [discrete] (driver 550.54.14)",
		formatGPU(full))

	named := gpu.New()
	named.Name = "AMD Radeon Pro 5500M"
	named.Vendor = normalize.VendorAMD
	assert.Equal(t, "AMD Radeon Pro 5500M", formatGPU(named))

	assert.Equal(t, "Unknown GPU", formatGPU(gpu.New()))
}

func TestWriteText(t *testing.T) {
	report := sysinfo.Report{
		Displays: &sysinfo.DomainReport[display.Display]{
			Items: []display.Display{{Width: 1920, Height: 1080, RefreshRate: 60, ScaledWidth: 1920, ScaledHeight: 1080}},
		},
		GPUs: &sysinfo.DomainReport[gpu.GPU]{
			Items: []gpu.GPU{},
			Error: "NVML library not found",
		},
		Processes: &sysinfo.DomainReport[processes.Processes]{
			Items: []processes.Processes{{Count: 321}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, report))

	assert.Equal(t, "Display 1: 1920x1080 @ 60 Hz\n"+
		"GPU: unavailable (NVML library not found)\n"+
		"Processes: 321\n", buf.String())
}

func loadConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()

	t.Setenv("SYSPROBE_CONFIG", "")
	cfg, err := config.Load(args, config.WithSearchPaths(t.TempDir()))
	require.NoError(t, err)

	return cfg
}

func TestRunJSON(t *testing.T) {
	cfg := loadConfig(t, "--json", "--domains", "processes")

	var buf bytes.Buffer
	require.NoError(t, run(cfg, &buf, logger.Default()))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "processes")
	assert.NotContains(t, decoded, "gpus")
	assert.NotContains(t, decoded, "displays")
}

func TestRunBadVendorFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vendors: [not, a, map"), 0o600))

	cfg := loadConfig(t, "--domains", "processes", "--vendor-ids", path)

	err := run(cfg, &bytes.Buffer{}, logger.Default())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInitApp))
}
