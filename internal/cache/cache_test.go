package cache

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	mu            sync.Mutex
	hits, misses  map[string]int
	invalidations int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{hits: map[string]int{}, misses: map[string]int{}}
}

func (o *countingObserver) Hit(name string) {
	o.mu.Lock()
	o.hits[name]++
	o.mu.Unlock()
}

func (o *countingObserver) Miss(name string) {
	o.mu.Lock()
	o.misses[name]++
	o.mu.Unlock()
}

func (o *countingObserver) Invalidated() {
	o.mu.Lock()
	o.invalidations++
	o.mu.Unlock()
}

func TestGetOrLoadMemoizes(t *testing.T) {
	obs := newCountingObserver()
	v := NewValue[[]int](NewGroup(WithObserver(obs)), "bills")

	var calls int
	load := func() ([]int, error) {
		calls++
		return []int{calls}, nil
	}

	first, err := v.GetOrLoad(load)
	require.NoError(t, err)
	assert.True(t, v.Cached())

	second, err := v.GetOrLoad(load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, obs.misses["bills"])
	assert.Equal(t, 1, obs.hits["bills"])
}

func TestGroupInvalidateClearsEveryMember(t *testing.T) {
	obs := newCountingObserver()
	g := NewGroup(WithObserver(obs))
	bills := NewValue[string](g, "bills")
	appliances := NewValue[string](g, "appliances")

	_, err := bills.GetOrLoad(func() (string, error) { return "b", nil })
	require.NoError(t, err)
	_, err = appliances.GetOrLoad(func() (string, error) { return "a", nil })
	require.NoError(t, err)

	g.Invalidate()

	assert.False(t, bills.Cached())
	assert.False(t, appliances.Cached())
	assert.Equal(t, 1, obs.invalidations)

	got, err := bills.GetOrLoad(func() (string, error) { return "b2", nil })
	require.NoError(t, err)
	assert.Equal(t, "b2", got)
}

func TestValueInvalidateIsScoped(t *testing.T) {
	g := NewGroup()
	a := NewValue[int](g, "a")
	b := NewValue[int](g, "b")
	_, _ = a.GetOrLoad(func() (int, error) { return 1, nil })
	_, _ = b.GetOrLoad(func() (int, error) { return 2, nil })

	a.Invalidate()

	assert.False(t, a.Cached())
	assert.True(t, b.Cached())
}

func TestPrivateGroupsAreIsolated(t *testing.T) {
	a := NewValue[int](nil, "a")
	b := NewValue[int](nil, "b")
	_, _ = a.GetOrLoad(func() (int, error) { return 1, nil })
	_, _ = b.GetOrLoad(func() (int, error) { return 2, nil })

	a.Group().Invalidate()

	assert.False(t, a.Cached())
	assert.True(t, b.Cached())
}

func TestLoadErrorIsNotCached(t *testing.T) {
	v := NewValue[int](nil, "bills")
	boom := errors.New("boom")

	_, err := v.GetOrLoad(func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, v.Cached())

	got, err := v.GetOrLoad(func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestConcurrentMissesShareOneLoad(t *testing.T) {
	v := NewValue[int](nil, "bills")

	var calls atomic.Int32
	release := make(chan struct{})
	load := func() (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	var started sync.WaitGroup
	started.Add(callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			results[i], _ = v.GetOrLoad(load)
		}(i)
	}
	started.Wait()
	for calls.Load() == 0 {
		runtime.Gosched()
	}
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 42, r)
	}
	assert.LessOrEqual(t, calls.Load(), int32(callers))
	assert.True(t, v.Cached())
}

func TestLoadOverlappingInvalidateDoesNotRepopulate(t *testing.T) {
	v := NewValue[string](nil, "bills")

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)
	go func() {
		got, _ := v.GetOrLoad(func() (string, error) {
			close(entered)
			<-release
			return "stale", nil
		})
		done <- got
	}()

	<-entered
	v.Group().Invalidate()
	close(release)

	assert.Equal(t, "stale", <-done)
	assert.False(t, v.Cached())

	got, err := v.GetOrLoad(func() (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}
