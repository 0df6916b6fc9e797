// Package sysprofiler reads the macOS `system_profiler SPDisplaysDataType`
// report, which lists every graphics adapter together with the screens
// attached to it.
package sysprofiler

import (
	"encoding/json"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/errors"
)

const (
	ErrCommandFailed = errors.ErrCommandFailed
	ErrParseFailed   = errors.ErrParseFailed

	// BusBuiltin marks adapters that are part of the SoC or chipset.
	BusBuiltin = "spdisplays_builtin"
	// MainYes marks the main (menu bar) screen.
	MainYes = "spdisplays_yes"
)

// Report is the decoded SPDisplaysDataType document.
type Report struct {
	Adapters []Adapter `json:"SPDisplaysDataType"`
}

// Adapter is one graphics adapter entry.
type Adapter struct {
	Model        string   `json:"sppci_model"`
	Vendor       string   `json:"spdisplays_vendor"`
	LegacyVendor string   `json:"sppci_vendor"`
	VRAM         string   `json:"spdisplays_vram"`
	LegacyVRAM   string   `json:"sppci_vram"`
	VRAMShared   string   `json:"spdisplays_vram_shared"`
	Bus          string   `json:"sppci_bus"`
	Cores        string   `json:"sppci_cores"`
	Screens      []Screen `json:"spdisplays_ndrvs"`
}

// Screen is one display attached to an adapter.
type Screen struct {
	Name       string `json:"_name"`
	Pixels     string `json:"_spdisplays_pixels"`
	Resolution string `json:"_spdisplays_resolution"`
	Main       string `json:"spdisplays_main"`
}

// VendorString returns whichever vendor key the OS version reported.
func (a Adapter) VendorString() string {
	if a.Vendor != "" {
		return a.Vendor
	}

	return a.LegacyVendor
}

// VRAMString returns whichever dedicated memory key the OS version reported.
func (a Adapter) VRAMString() string {
	if a.VRAM != "" {
		return a.VRAM
	}

	return a.LegacyVRAM
}

// Run executes system_profiler and decodes its output.
func Run() (*Report, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return nil, errors.New().Wrap(ErrCommandFailed, err).WithMessage("system_profiler SPDisplaysDataType failed")
	}

	return Parse(out)
}

// Parse decodes a SPDisplaysDataType JSON document.
func Parse(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.New().Wrap(ErrParseFailed, err)
	}

	return &report, nil
}

var dimensionsPattern = regexp.MustCompile(`(\d+)\s*x\s*(\d+)(?:\s*@\s*([0-9.]+)\s*Hz)?`)

// ParseDimensions reads strings such as "2880 x 1800",
// "1440 x 900 @ 60.00Hz" or "3024 x 1964 Retina". hz is 0 when no rate is
// present.
func ParseDimensions(s string) (width, height uint32, hz float64, ok bool) {
	m := dimensionsPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}

	w, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	h, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	if m[3] != "" {
		hz, _ = strconv.ParseFloat(m[3], 64)
	}

	return uint32(w), uint32(h), hz, true
}

// ParseVRAM converts "8 GB" or "1536 MB" to bytes.
func ParseVRAM(s string) (uint64, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, false
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || value < 0 {
		return 0, false
	}

	switch strings.ToUpper(fields[1]) {
	case "GB":
		return uint64(value * (1 << 30)), true
	case "MB":
		return uint64(value * (1 << 20)), true
	default:
		return 0, false
	}
}

var vendorIDPattern = regexp.MustCompile(`0x[0-9a-fA-F]{4}`)

// VendorID extracts the hexadecimal PCI vendor ID from strings such as
// "NVIDIA (0x10de)". Apple silicon reports a symbolic vendor without an ID.
func VendorID(s string) (string, bool) {
	id := vendorIDPattern.FindString(s)

	return id, id != ""
}
