//go:build darwin

package processes

import (
	"unsafe"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"golang.org/x/sys/unix"
)

// SysctlProbe divides the size of the kern.proc.all table by the size of
// one kinfo_proc record.
type SysctlProbe struct{}

func (SysctlProbe) Name() string {
	return "sysctl"
}

func (SysctlProbe) Probe(list *detect.List[Processes]) error {
	buf, err := unix.SysctlRaw("kern.proc.all")
	if err != nil {
		return errors.New().Wrap(ErrSysctlFailed, err).WithMessage("sysctl(kern.proc.all) failed")
	}

	count, err := countRecords(len(buf), int(unsafe.Sizeof(unix.KinfoProc{})))
	if err != nil {
		return err
	}

	list.Append(Processes{Count: count})

	return nil
}
