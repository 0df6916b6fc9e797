package display

import "codeberg.org/mutker/sysprobe/internal/errors"

const (
	ErrNoDisplayServer = errors.ErrorCode("display_no_server")
	ErrCommandFailed   = errors.ErrCommandFailed
	ErrParseFailed     = errors.ErrParseFailed
	ErrSysfsUnreadable = errors.ErrorCode("display_sysfs_unreadable")
	ErrEnumFailed      = errors.ErrorCode("display_enum_failed")
)
