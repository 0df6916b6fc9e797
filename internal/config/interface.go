package config

// Provider defines the interface for accessing configuration values.
// All values are immutable after loading.
type Provider interface {
	// GetLogLevel returns the configured logging level
	GetLogLevel() LogLevel

	// IsDebug returns whether debug logging was requested
	IsDebug() bool

	// IsVerbose returns whether verbose logging was requested
	IsVerbose() bool

	// GetDomains returns the detection domains to run, in order
	GetDomains() []string

	// GetDisabledBackends returns backend names that must not run
	GetDisabledBackends() []string

	// GetVendorIDsPath returns the vendor ID override file, or ""
	GetVendorIDsPath() string

	// IsJSONOutput returns whether results are printed as JSON
	IsJSONOutput() bool
}

// Option defines a configuration option that can be passed to Load
type Option func(*options) error

// options holds internal configuration options
type options struct {
	configPath  string
	envPrefix   string
	searchPaths []string
}

// WithConfigFile specifies an explicit configuration file path
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.configPath = path
		return nil
	}
}

// WithEnvPrefix specifies a custom environment variable prefix
// Default is "SYSPROBE"
func WithEnvPrefix(prefix string) Option {
	return func(o *options) error {
		o.envPrefix = prefix
		return nil
	}
}

// WithSearchPaths replaces the directories searched for sysprobe.toml
func WithSearchPaths(paths ...string) Option {
	return func(o *options) error {
		o.searchPaths = paths
		return nil
	}
}

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}
