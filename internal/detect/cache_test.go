package detect_test

import (
	"sync"
	"testing"

	"codeberg.org/mutker/sysprobe/internal/detect"
	"codeberg.org/mutker/sysprobe/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRunsChainOnce(t *testing.T) {
	cache := detect.NewCache()
	probe := &countingProbe{name: "counter", records: []int{1, 2, 3}}
	chain := detect.Chain[int]{probe}

	assert.False(t, cache.Detected("gpus"))

	first := detect.Get(cache, "gpus", chain)
	second := detect.Get(cache, "gpus", chain)

	assert.Same(t, first, second)
	assert.Equal(t, 1, probe.calls)
	assert.True(t, cache.Detected("gpus"))
	assert.Equal(t, []int{1, 2, 3}, second.Items())
}

func TestGetCachesFailure(t *testing.T) {
	cache := detect.NewCache()
	probe := &countingProbe{name: "sysctl", err: errors.New().WithMessage(errors.ErrProbeFailed, "sysctl() failed")}
	chain := detect.Chain[int]{probe}

	first := detect.Get(cache, "processes", chain)
	second := detect.Get(cache, "processes", chain)

	assert.Same(t, first, second)
	assert.Equal(t, 1, probe.calls)
	assert.Equal(t, "sysctl() failed", second.ErrorText())
}

func TestGetDomainsAreIndependent(t *testing.T) {
	cache := detect.NewCache()
	failing := &countingProbe{name: "a", err: errors.New().New(errors.ErrProbeFailed)}
	working := &countingProbe{name: "b", records: []int{5}}

	bad := detect.Get(cache, "displays", detect.Chain[int]{failing})
	good := detect.Get(cache, "gpus", detect.Chain[int]{working})

	assert.False(t, bad.OK())
	assert.True(t, good.OK())
	assert.Equal(t, []detect.Domain{"displays", "gpus"}, cache.Domains())
}

func TestGetConcurrentCallersShareResult(t *testing.T) {
	cache := detect.NewCache()

	var mu sync.Mutex
	calls := 0
	chain := detect.Chain[int]{
		detect.ProbeFunc("slow", func(l *detect.List[int]) error {
			mu.Lock()
			calls++
			mu.Unlock()
			l.Append(1)
			return nil
		}),
	}

	const callers = 16
	results := make([]*detect.Result[int], callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = detect.Get(cache, "gpus", chain)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, r := range results {
		require.Same(t, results[0], r)
	}
}

func TestGetPanicsOnTypeMismatch(t *testing.T) {
	cache := detect.NewCache()
	detect.Get(cache, "gpus", detect.Chain[int]{&countingProbe{name: "ints"}})

	assert.Panics(t, func() {
		detect.Get[string](cache, "gpus", nil)
	})
}
