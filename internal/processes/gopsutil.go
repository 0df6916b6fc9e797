package processes

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"github.com/shirou/gopsutil/v4/process"
)

// PidsProbe counts the PIDs gopsutil lists for the running OS.
type PidsProbe struct {
	// Pids lists process IDs. Nil uses gopsutil.
	Pids func() ([]int32, error)
}

func (PidsProbe) Name() string {
	return "gopsutil"
}

func (p PidsProbe) Probe(list *detect.List[Processes]) error {
	pids := p.Pids
	if pids == nil {
		pids = process.Pids
	}

	ids, err := pids()
	if err != nil {
		return errors.New().Wrap(ErrListFailed, err)
	}

	list.Append(Processes{Count: uint32(len(ids))})

	return nil
}
