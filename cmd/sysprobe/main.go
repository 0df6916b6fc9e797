package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/config"
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/display"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/gpu"
	"codeberg.org/mutker/sysprobe/internal/logger"
	"codeberg.org/mutker/sysprobe/internal/normalize"
	"codeberg.org/mutker/sysprobe/internal/processes"
	"codeberg.org/mutker/sysprobe/internal/sysinfo"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if level, ok := logger.ParseLevel(cfg.GetLogLevel().String()); ok {
		logger.SetLogLevel(level)
	}
	logger.Debug().Str("file", cfg.ConfigFile).Msg("Config loaded")

	if err := run(cfg, os.Stdout, logger.Default()); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.FatalWithCode(appErr).Msg("sysprobe failed")
		}
		logger.Fatal().Err(err).Msg("sysprobe failed")
	}
}

func run(cfg config.Provider, w io.Writer, log logger.Logger) error {
	errFactory := errors.New()

	detector, err := newDetector(cfg, log)
	if err != nil {
		return err
	}

	domains := make([]detect.Domain, 0, len(cfg.GetDomains()))
	for _, name := range cfg.GetDomains() {
		domain, err := sysinfo.ParseDomain(name)
		if err != nil {
			return err
		}
		log.Debug().
			Str("domain", string(domain)).
			Strs("backends", detector.Backends(domain)).
			Msg("Detecting")
		domains = append(domains, domain)
	}

	report := detector.Report(domains)
	logReport(log, report)

	if cfg.IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errFactory.Wrap(errors.ErrReportFail, err)
		}

		return nil
	}

	if err := writeText(w, report); err != nil {
		return errFactory.Wrap(errors.ErrReportFail, err)
	}

	return nil
}

func newDetector(cfg config.Provider, log logger.Logger) (*sysinfo.Detector, error) {
	opts := []sysinfo.Option{sysinfo.WithDisabledBackends(cfg.GetDisabledBackends()...)}

	if path := cfg.GetVendorIDsPath(); path != "" {
		reg, err := normalize.LoadRegistry(path)
		if err != nil {
			return nil, errors.New().Wrap(errors.ErrInitApp, err)
		}
		log.Debug().Str("file", path).Int("ids", reg.Len()).Msg("Vendor IDs loaded")
		opts = append(opts, sysinfo.WithRegistry(reg))
	}

	return sysinfo.New(opts...), nil
}

func logReport(log logger.Logger, r sysinfo.Report) {
	if r.Displays != nil {
		for _, d := range r.Displays.Items {
			log.Info().
				Str("name", d.Name).
				Uint32("width", d.Width).
				Uint32("height", d.Height).
				Uint32("refresh_rate", d.RefreshRate).
				Uint32("scaled_width", d.ScaledWidth).
				Uint32("scaled_height", d.ScaledHeight).
				Bool("primary", d.Primary).
				Msg("Display")
		}
		logDomainError(log, display.Domain, r.Displays.Error)
	}

	if r.GPUs != nil {
		for _, g := range r.GPUs.Items {
			event := log.Info().
				Str("vendor", string(g.Vendor)).
				Str("name", g.Name).
				Str("driver", g.Driver).
				Str("type", string(g.Type))
			if g.DedicatedMemory != nil {
				event = event.Uint64("dedicated_memory", *g.DedicatedMemory)
			}
			if g.Temperature != nil {
				event = event.Float64("temperature", *g.Temperature)
			}
			if g.CoreCount != nil {
				event = event.Uint32("core_count", *g.CoreCount)
			}
			event.Msg("GPU")
		}
		logDomainError(log, gpu.Domain, r.GPUs.Error)
	}

	if r.Processes != nil {
		for _, p := range r.Processes.Items {
			log.Info().Uint32("count", p.Count).Msg("Processes")
		}
		logDomainError(log, processes.Domain, r.Processes.Error)
	}
}

func logDomainError(log logger.Logger, domain detect.Domain, text string) {
	if text == "" {
		return
	}

	log.Warn().Str("domain", string(domain)).Str("error", text).Msg("Detection failed")
}

func writeText(w io.Writer, r sysinfo.Report) error {
	var b strings.Builder

	if r.Displays != nil {
		for i, d := range r.Displays.Items {
			fmt.Fprintf(&b, "Display %d: %s\n", i+1, formatDisplay(d))
		}
		writeError(&b, "Display", r.Displays.Error)
	}

	if r.GPUs != nil {
		for i, g := range r.GPUs.Items {
			fmt.Fprintf(&b, "GPU %d: %s\n", i+1, formatGPU(g))
		}
		writeError(&b, "GPU", r.GPUs.Error)
	}

	if r.Processes != nil {
		if len(r.Processes.Items) > 0 {
			fmt.Fprintf(&b, "Processes: %d\n", r.Processes.Items[0].Count)
		}
		writeError(&b, "Processes", r.Processes.Error)
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func writeError(b *strings.Builder, label, text string) {
	if text != "" {
		fmt.Fprintf(b, "%s: unavailable (%s)\n", label, text)
	}
}

func formatDisplay(d display.Display) string {
	var b strings.Builder

	if d.Name != "" {
		fmt.Fprintf(&b, "%s ", d.Name)
	}
	fmt.Fprintf(&b, "%dx%d", d.Width, d.Height)
	if d.RefreshRate != 0 {
		fmt.Fprintf(&b, " @ %d Hz", d.RefreshRate)
	}
	if d.ScaledWidth != d.Width || d.ScaledHeight != d.Height {
		fmt.Fprintf(&b, " (as %dx%d)", d.ScaledWidth, d.ScaledHeight)
	}
	if d.Primary {
		b.WriteString(" [Primary]")
	}

	return b.String()
}

func formatGPU(g gpu.GPU) string {
	var b strings.Builder

	name := g.Name
	if name == "" {
		name = "Unknown GPU"
	}
	if g.Vendor != normalize.VendorUnknown && !strings.Contains(strings.ToLower(name), strings.ToLower(string(g.Vendor))) {
		name = string(g.Vendor) + " " + name
	}
	b.WriteString(name)

	if g.CoreCount != nil {
		fmt.Fprintf(&b, " (%d cores)", *g.CoreCount)
	}
	if g.Temperature != nil {
		fmt.Fprintf(&b, " - %.1f°C", *g.Temperature)
	}
	if g.DedicatedMemory != nil {
		fmt.Fprintf(&b, " - %s", humanize.IBytes(*g.DedicatedMemory))
	}
	if g.Type != normalize.GPUTypeUnknown {
		fmt.Fprintf(&b, " [%s]", g.Type)
	}
	if g.Driver != "" {
		fmt.Fprintf(&b, " (driver %s)", g.Driver)
	}

	return b.String()
}
