package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrNotImplemented  ErrorCode = "not_implemented"
	ErrUnavailable     ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrMissingConfig   ErrorCode = "missing_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrParseFlags      ErrorCode = "parse_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidDomain   ErrorCode = "invalid_domain"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Resource errors
	ErrResourceNotFound ErrorCode = "resource_not_found"

	// Detection errors
	ErrProbeFailed    ErrorCode = "probe_failed"
	ErrProbePanic     ErrorCode = "probe_panicked"
	ErrNoProbes       ErrorCode = "no_probes"
	ErrParseFailed    ErrorCode = "parse_failed"
	ErrCommandFailed  ErrorCode = "command_failed"
	ErrVendorRegistry ErrorCode = "vendor_registry_failed"

	// Application errors
	ErrInitApp    ErrorCode = "init_app_failed"
	ErrReportFail ErrorCode = "report_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrNotImplemented:   "Operation not implemented",
	ErrUnavailable:      "Service unavailable",
	ErrInvalidConfig:    "Invalid configuration",
	ErrMissingConfig:    "Missing configuration",
	ErrBindFlags:        "Failed to bind flags",
	ErrParseFlags:       "Failed to parse flags",
	ErrReadConfig:       "Failed to read config file",
	ErrInvalidDomain:    "Unknown detection domain",
	ErrInvalidLogLevel:  "Invalid log level",
	ErrInitFailed:       "Initialization failed",
	ErrShutdownFailed:   "Shutdown failed",
	ErrResourceNotFound: "Resource not found",
	ErrProbeFailed:      "Probe failed",
	ErrProbePanic:       "Probe panicked",
	ErrNoProbes:         "No probes available for this platform",
	ErrParseFailed:      "Failed to parse probe output",
	ErrCommandFailed:    "External command failed",
	ErrVendorRegistry:   "Failed to load vendor registry",
	ErrInitApp:          "Failed to initialize application",
	ErrReportFail:       "Failed to write report",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
