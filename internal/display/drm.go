package display

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/logger"
)

const defaultSysfsRoot = "/sys"

// DRMProbe lists connected DRM connectors from sysfs. The kernel does not
// expose the active refresh rate there, so it is reported as unknown.
type DRMProbe struct {
	// Root is the sysfs mount point. Empty means /sys.
	Root string
}

func (DRMProbe) Name() string {
	return "drm"
}

func (p DRMProbe) Probe(list *detect.List[Display]) error {
	root := p.Root
	if root == "" {
		root = defaultSysfsRoot
	}
	drmDir := filepath.Join(root, "class", "drm")

	entries, err := os.ReadDir(drmDir)
	if err != nil {
		return errors.New().Wrap(ErrSysfsUnreadable, err).WithMessage("Open " + drmDir + " failed")
	}

	for _, e := range entries {
		card, connector, ok := strings.Cut(e.Name(), "-")
		if !ok || !strings.HasPrefix(card, "card") {
			continue
		}

		dir := filepath.Join(drmDir, e.Name())
		if readTrimmed(filepath.Join(dir, "status")) != "connected" {
			continue
		}
		if enabled := readTrimmed(filepath.Join(dir, "enabled")); enabled != "" && enabled != "enabled" {
			continue
		}

		modes := readTrimmed(filepath.Join(dir, "modes"))
		first, _, _ := strings.Cut(modes, "\n")
		width, height, ok := parseSize(strings.TrimSpace(first))
		if !ok {
			logger.Debug().Str("connector", e.Name()).Msg("Connector has no usable mode")
			continue
		}

		Append(list, Display{
			Name:         connector,
			Width:        width,
			Height:       height,
			ScaledWidth:  width,
			ScaledHeight: height,
		})
	}

	return nil
}

func readTrimmed(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(b))
}
