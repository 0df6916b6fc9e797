package processes

import "codeberg.org/mutker/sysprobe/internal/errors"

const (
	ErrNoCount          = errors.ErrorCode("processes_no_count")
	ErrListFailed       = errors.ErrorCode("processes_list_failed")
	ErrSysctlFailed     = errors.ErrorCode("processes_sysctl_failed")
	ErrRecordSize       = errors.ErrorCode("processes_record_size")
	ErrProcfsUnreadable = errors.ErrorCode("processes_procfs_unreadable")
)
