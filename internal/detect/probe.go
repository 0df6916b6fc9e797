package detect

import (
	"fmt"
	"slices"

	"codeberg.org/mutker/sysprobe/internal/errors"
	"codeberg.org/mutker/sysprobe/internal/logger"
)

// Probe is one backend able to gather records for a domain. Probe appends
// fully initialized records to list and returns nil on success, even when
// it found nothing. A non-nil error means the backend could not query its
// source; whatever it appended is discarded and the next backend runs.
type Probe[T any] interface {
	Name() string
	Probe(list *List[T]) error
}

type probeFunc[T any] struct {
	name string
	fn   func(*List[T]) error
}

func (p probeFunc[T]) Name() string {
	return p.name
}

func (p probeFunc[T]) Probe(list *List[T]) error {
	return p.fn(list)
}

// ProbeFunc adapts a plain function to the Probe interface.
func ProbeFunc[T any](name string, fn func(*List[T]) error) Probe[T] {
	return probeFunc[T]{name: name, fn: fn}
}

// Chain is an ordered list of backends for one domain, most preferred first.
type Chain[T any] []Probe[T]

// Names returns the backend names in chain order.
func (c Chain[T]) Names() []string {
	names := make([]string, 0, len(c))
	for _, p := range c {
		names = append(names, p.Name())
	}

	return names
}

// Without returns a copy of the chain minus the named backends.
func (c Chain[T]) Without(names ...string) Chain[T] {
	out := make(Chain[T], 0, len(c))
	for _, p := range c {
		if slices.Contains(names, p.Name()) {
			continue
		}
		out = append(out, p)
	}

	return out
}

// Collect runs the chain once, uncached. The first backend that succeeds
// ends the chain. When every backend fails, the result carries the error of
// the last one together with any records that backend appended.
func Collect[T any](domain Domain, chain Chain[T]) *Result[T] {
	result := &Result[T]{}
	result.err = chain.run(domain, &result.list)

	logger.Debug().
		Str("domain", string(domain)).
		Int("records", result.Len()).
		Err(result.err).
		Msg("Detection finished")

	return result
}

func (c Chain[T]) run(domain Domain, list *List[T]) error {
	if len(c) == 0 {
		return errors.New().WithData(ErrNoProbes, string(domain))
	}

	var err error
	for i, p := range c {
		mark := list.Len()
		if err = runProbe(p, list); err == nil {
			logger.Debug().
				Str("domain", string(domain)).
				Str("probe", p.Name()).
				Int("records", list.Len()-mark).
				Msg("Probe succeeded")

			return nil
		}

		// The last backend keeps what it gathered so callers can show it
		// next to the error.
		if i < len(c)-1 {
			list.truncate(mark)
		}
		logger.Debug().
			Str("domain", string(domain)).
			Str("probe", p.Name()).
			Err(err).
			Msg("Probe failed")
	}

	return err
}

func runProbe[T any](p Probe[T], list *List[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New().WithData(ErrProbePanic, fmt.Sprintf("%s: %v", p.Name(), r))
		}
	}()

	return p.Probe(list)
}
