package display

import (
	"bufio"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/logger"
	"codeberg.org/mutker/sysprobe/internal/normalize"
)

// XrandrProbe reads the current mode of every connected X11 output from
// `xrandr --current`.
type XrandrProbe struct {
	// Run returns xrandr's output. Nil runs the real command.
	Run func() ([]byte, error)
}

func (XrandrProbe) Name() string {
	return "xrandr"
}

func (p XrandrProbe) Probe(list *detect.List[Display]) error {
	errFactory := errors.New()

	run := p.Run
	if run == nil {
		if os.Getenv("DISPLAY") == "" {
			return errFactory.WithMessage(ErrNoDisplayServer, "DISPLAY is not set")
		}
		run = func() ([]byte, error) {
			return exec.Command("xrandr", "--current").Output()
		}
	}

	out, err := run()
	if err != nil {
		return errFactory.Wrap(ErrCommandFailed, err).WithMessage("xrandr --current failed")
	}

	added := ParseXrandr(string(out), list)
	logger.Debug().Int("displays", added).Msg("Parsed xrandr output")

	return nil
}

type xrandrOutput struct {
	name          string
	primary       bool
	logicalWidth  uint32
	logicalHeight uint32
}

// ParseXrandr appends one display per connected output that has an active
// mode and returns how many were added.
func ParseXrandr(out string, list *detect.List[Display]) int {
	var (
		current *xrandrOutput
		added   int
	)

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if line[0] != ' ' && line[0] != '\t' {
			current = parseXrandrOutput(line)
			continue
		}
		if current == nil {
			continue
		}

		width, height, hz, ok := parseXrandrMode(line)
		if !ok {
			continue
		}

		scaledWidth, scaledHeight := current.logicalWidth, current.logicalHeight
		if scaledWidth == 0 || scaledHeight == 0 {
			scaledWidth, scaledHeight = width, height
		}

		if Append(list, Display{
			Name:         current.name,
			Width:        width,
			Height:       height,
			RefreshRate:  normalize.RefreshRateHz(hz),
			ScaledWidth:  scaledWidth,
			ScaledHeight: scaledHeight,
			Primary:      current.primary,
		}) {
			added++
		}
		// Only the first active mode of an output counts
		current = nil
	}

	return added
}

// parseXrandrOutput handles "DP-1 connected primary 1920x1080+0+0 (...)".
// Disconnected outputs and screen summary lines yield nil.
func parseXrandrOutput(line string) *xrandrOutput {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] != "connected" {
		return nil
	}

	o := &xrandrOutput{name: fields[0]}
	for _, f := range fields[2:] {
		if f == "primary" {
			o.primary = true
			continue
		}
		if strings.HasPrefix(f, "(") {
			break
		}
		if w, h, ok := parseGeometry(f); ok {
			o.logicalWidth, o.logicalHeight = w, h
		}
	}

	return o
}

// parseGeometry reads "1920x1080+0+0".
func parseGeometry(s string) (uint32, uint32, bool) {
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}

	return parseSize(s)
}

// parseSize reads "1920x1080", ignoring an interlace suffix such as "i".
func parseSize(s string) (uint32, uint32, bool) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, false
	}
	hs = strings.TrimRight(hs, "abcdefghijklmnopqrstuvwxyz_")

	w, err := strconv.ParseUint(ws, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseUint(hs, 10, 32)
	if err != nil {
		return 0, 0, false
	}

	return uint32(w), uint32(h), true
}

// parseXrandrMode handles "   1920x1080     60.00*+  59.94". It reports ok
// only for the mode marked current with '*'.
func parseXrandrMode(line string) (uint32, uint32, float64, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, 0, false
	}

	for _, f := range fields[1:] {
		if !strings.Contains(f, "*") {
			continue
		}

		width, height, ok := parseSize(fields[0])
		if !ok {
			return 0, 0, 0, false
		}
		hz, err := strconv.ParseFloat(strings.Trim(f, "*+"), 64)
		if err != nil {
			hz = 0
		}

		return width, height, hz, true
	}

	return 0, 0, 0, false
}
