package detect

import "codeberg.org/mutker/sysprobe/internal/errors"

const (
	ErrProbeFailed = errors.ErrProbeFailed
	ErrProbePanic  = errors.ErrProbePanic
	ErrNoProbes    = errors.ErrNoProbes
)
