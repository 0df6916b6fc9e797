package gpu

import "codeberg.org/mutker/sysprobe/internal/errors"

const (
	// Initialization and Lifecycle Errors
	ErrNotInitialized = errors.ErrorCode("gpu_not_initialized")
	ErrInitFailed     = errors.ErrorCode("gpu_init_failed")
	ErrDeviceNotFound = errors.ErrorCode("gpu_device_not_found")
	ErrShutdownFailed = errors.ErrorCode("gpu_shutdown_failed")

	// Device Discovery Errors
	ErrDeviceCountFailed = errors.ErrorCode("gpu_device_count_failed")
	ErrSysfsUnreadable   = errors.ErrorCode("gpu_sysfs_unreadable")
	ErrRegistryRead      = errors.ErrorCode("gpu_registry_read_failed")
	ErrWMIQuery          = errors.ErrorCode("gpu_wmi_query_failed")
)
