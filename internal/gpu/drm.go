package gpu

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/logger"
	"codeberg.org/mutker/sysprobe/internal/normalize"
)

const defaultSysfsRoot = "/sys"

// DRMProbe lists PCI graphics devices bound to a DRM driver. sysfs sees
// every vendor's card, so it is the primary source; NVIDIA cards are then
// completed from NVML when NVMLDevices is set.
type DRMProbe struct {
	// Root is the sysfs mount point. Empty means /sys.
	Root     string
	Registry *normalize.Registry
	// NVMLDevices reads the NVIDIA devices. Nil skips the NVML pass.
	NVMLDevices func() ([]NVMLDevice, error)
}

func (DRMProbe) Name() string {
	return "drm"
}

func (p DRMProbe) Probe(list *detect.List[GPU]) error {
	root := p.Root
	if root == "" {
		root = defaultSysfsRoot
	}
	drmDir := filepath.Join(root, "class", "drm")

	entries, err := os.ReadDir(drmDir)
	if err != nil {
		return errors.New().Wrap(ErrSysfsUnreadable, err).WithMessage("Open " + drmDir + " failed")
	}

	var cards []GPU
	var slots []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "card") || strings.Contains(name, "-") {
			continue
		}

		device := filepath.Join(drmDir, name, "device")
		vendorID, ok := normalize.ParsePCIVendorID(readTrimmed(filepath.Join(device, "vendor")))
		if !ok {
			logger.Debug().Str("card", name).Msg("Card has no PCI vendor")
			continue
		}

		g := New()
		g.SetVendorID(p.Registry, vendorID)
		g.Name = readTrimmed(filepath.Join(device, "product_name"))
		if link, err := os.Readlink(filepath.Join(device, "driver")); err == nil {
			g.Driver = filepath.Base(link)
		}
		if vram, err := strconv.ParseUint(readTrimmed(filepath.Join(device, "mem_info_vram_total")), 10, 64); err == nil {
			g.SetDedicatedMemory(vram)
		}
		if temp, ok := readHwmonTemp(device); ok {
			g.SetTemperature(temp)
		}

		cards = append(cards, g)
		slots = append(slots, readPCISlot(device))
	}

	p.completeFromNVML(cards, slots)
	for _, g := range cards {
		list.Append(g)
	}

	return nil
}

// completeFromNVML merges NVML readings into the NVIDIA cards, matched by
// PCI address. NVML is only opened when such a card exists.
func (p DRMProbe) completeFromNVML(cards []GPU, slots []string) {
	if p.NVMLDevices == nil {
		return
	}

	nvidia := false
	for i := range cards {
		if cards[i].Vendor == normalize.VendorNVIDIA && slots[i] != "" {
			nvidia = true
			break
		}
	}
	if !nvidia {
		return
	}

	devices, err := p.NVMLDevices()
	if err != nil {
		logger.Debug().Err(err).Msg("NVML unavailable, keeping sysfs values")
		return
	}

	byBus := make(map[string]NVMLDevice, len(devices))
	for _, d := range devices {
		byBus[NormalizeBusID(d.BusID)] = d
	}

	for i := range cards {
		if cards[i].Vendor != normalize.VendorNVIDIA || slots[i] == "" {
			continue
		}
		if d, ok := byBus[slots[i]]; ok {
			mergeNVML(&cards[i], d, p.Registry)
		}
	}
}

// readPCISlot returns the PCI address from the device's uevent file.
func readPCISlot(device string) string {
	for _, line := range strings.Split(readTrimmed(filepath.Join(device, "uevent")), "\n") {
		if slot, ok := strings.CutPrefix(line, "PCI_SLOT_NAME="); ok {
			return NormalizeBusID(slot)
		}
	}

	return ""
}

// readHwmonTemp returns the first hwmon temp1_input of a device in degrees
// Celsius. The kernel reports millidegrees.
func readHwmonTemp(device string) (float64, bool) {
	matches, _ := filepath.Glob(filepath.Join(device, "hwmon", "hwmon*", "temp1_input"))
	for _, m := range matches {
		milli, err := strconv.ParseInt(readTrimmed(m), 10, 64)
		if err != nil {
			continue
		}

		return float64(milli) / 1000, true
	}

	return 0, false
}

func readTrimmed(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(b))
}
