package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/greencalc/internal/cache"
)

func TestCacheObserver(t *testing.T) {
	m := New()
	v := cache.NewValue[int](cache.NewGroup(cache.WithObserver(m)), "bills")

	load := func() (int, error) { return 1, nil }
	_, _ = v.GetOrLoad(load)
	_, _ = v.GetOrLoad(load)
	_, _ = v.GetOrLoad(load)
	v.Group().Invalidate()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses.WithLabelValues("bills")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("bills")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheInvalidations))
}

func TestAppendedAndTextfile(t *testing.T) {
	m := New()
	hook := m.Appended("appliances")
	hook()
	hook()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.recordsAppended.WithLabelValues("appliances")))

	path := filepath.Join(t.TempDir(), "greencalc.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `greencalc_records_appended_total{store="appliances"} 2`)
}
