// Package processes counts the processes running on the system.
package processes

import (
	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
)

// Domain is the cache key for process counting.
const Domain detect.Domain = "processes"

// Processes is the single record a process-count backend produces.
type Processes struct {
	Count uint32 `json:"count"`
}

// Count runs the platform backends. On failure it returns 0 and the error
// of the last backend tried; callers treat that as unknown.
func Count() (uint32, error) {
	return FromResult(detect.Collect(Domain, Platform()))
}

// FromResult extracts the count from a collected result.
func FromResult(result *detect.Result[Processes]) (uint32, error) {
	if err := result.Err(); err != nil {
		return 0, err
	}
	if result.Len() == 0 {
		return 0, errors.New().New(ErrNoCount)
	}

	return result.At(0).Count, nil
}

// Platform returns the process-count backends for the running OS, most
// preferred first.
func Platform() detect.Chain[Processes] {
	return platformChain()
}

func countRecords(total, size int) (uint32, error) {
	if size <= 0 {
		return 0, errors.New().New(ErrRecordSize).WithData(size)
	}

	return uint32(total / size), nil
}
