package config

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/sysinfo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = LogLevelWarning
	DefaultEnvPrefix = "SYSPROBE"

	configName = "sysprobe"
	configType = "toml"
)

type Config struct {
	LogLevel         LogLevel `mapstructure:"log_level"`
	Debug            bool     `mapstructure:"debug"`
	Verbose          bool     `mapstructure:"verbose"`
	Domains          []string `mapstructure:"domains"`
	DisabledBackends []string `mapstructure:"disable_backend"`
	VendorIDs        string   `mapstructure:"vendor_ids"`
	JSON             bool     `mapstructure:"json"`

	// ConfigFile is the file the values were read from, or "".
	ConfigFile string `mapstructure:"-"`
}

// Load reads configuration from defaults, the config file, SYSPROBE_*
// environment variables and args (without the program name), in increasing
// order of precedence.
func Load(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	// Define flags
	flags := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	configFlag := flags.String("config", "", "Path to the config file")
	flags.String("log-level", string(DefaultLogLevel), "Log level (debug, info, warning, error)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")
	flags.StringSlice("domains", defaultDomains(), "Detection domains to run")
	flags.StringSlice("disable-backend", nil, `Backends to skip, e.g. "xrandr" or "gpus:drm"`)
	flags.String("vendor-ids", "", "YAML file with extra PCI vendor IDs")
	flags.Bool("json", false, "Print results as JSON")

	// Parse flags
	if err := flags.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrParseFlags, err)
	}

	v := viper.New()
	v.SetConfigType(configType)
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("domains", defaultDomains())
	v.SetDefault("disable_backend", []string{})
	v.SetDefault("vendor_ids", "")
	v.SetDefault("json", false)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"log_level":       "log-level",
		"debug":           "debug",
		"verbose":         "verbose",
		"domains":         "domains",
		"disable_backend": "disable-backend",
		"vendor_ids":      "vendor-ids",
		"json":            "json",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	// Load configuration from file
	path := firstNonEmpty(*configFlag, o.configPath, os.Getenv(o.envPrefix+"_CONFIG"))
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		for _, dir := range searchPaths(o) {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Unmarshal the configuration
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.LogLevel = LogLevel(strings.ToLower(string(cfg.LogLevel)))
	cfg.Domains = splitList(cfg.Domains)
	cfg.DisabledBackends = splitList(cfg.DisabledBackends)
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the log level and normalizes the domain names.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !c.LogLevel.IsValid() {
		return errFactory.New(errors.ErrInvalidLogLevel).WithData(c.LogLevel)
	}

	if len(c.Domains) == 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "No detection domains selected")
	}
	for i, name := range c.Domains {
		domain, err := sysinfo.ParseDomain(name)
		if err != nil {
			return err
		}
		c.Domains[i] = string(domain)
	}

	return nil
}

func (c *Config) GetLogLevel() LogLevel {
	switch {
	case c.Debug:
		return LogLevelDebug
	case c.Verbose && c.LogLevel != LogLevelDebug:
		return LogLevelInfo
	default:
		return c.LogLevel
	}
}

func (c *Config) IsDebug() bool                 { return c.Debug }
func (c *Config) IsVerbose() bool               { return c.Verbose }
func (c *Config) GetDomains() []string          { return c.Domains }
func (c *Config) GetDisabledBackends() []string { return c.DisabledBackends }
func (c *Config) GetVendorIDsPath() string      { return c.VendorIDs }
func (c *Config) IsJSONOutput() bool            { return c.JSON }

func defaultDomains() []string {
	domains := sysinfo.Domains()
	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = string(d)
	}

	return names
}

func searchPaths(o *options) []string {
	if o.searchPaths != nil {
		return o.searchPaths
	}

	paths := []string{"/etc"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, configName))
	}

	return paths
}

// splitList trims list entries and splits any that still hold commas.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}

	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
