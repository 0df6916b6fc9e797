package processes

import (
	"os"
	"strconv"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
)

// ProcfsProbe counts the numeric directories under /proc.
type ProcfsProbe struct {
	// Root is the procfs mount point. Empty means /proc.
	Root string
}

func (ProcfsProbe) Name() string {
	return "procfs"
}

func (p ProcfsProbe) Probe(list *detect.List[Processes]) error {
	root := p.Root
	if root == "" {
		root = "/proc"
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return errors.New().Wrap(ErrProcfsUnreadable, err).WithMessage("Open " + root + " failed")
	}

	var count uint32
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := strconv.ParseUint(e.Name(), 10, 32); err == nil {
			count++
		}
	}

	list.Append(Processes{Count: count})

	return nil
}
