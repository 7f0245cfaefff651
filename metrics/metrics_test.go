package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := New(prometheus.NewRegistry())
	t.Run("group outcomes", func(t *testing.T) {
		c.GroupPopulated("ze", "Device", false, 17, 0, nil)
		c.GroupPopulated("ze", "Kernel", false, 11, 1, nil)
		c.GroupPopulated("ze", "ImageExp", true, 0, 2, errors.New("unsupported"))
		c.GroupPopulated("ze", "Fence", false, 0, 5, errors.New("unsupported"))
		assert.Equal(t, float64(1), testutil.ToFloat64(c.Groups.WithLabelValues("ze", "Device", "ok")))
		assert.Equal(t, float64(1), testutil.ToFloat64(c.Groups.WithLabelValues("ze", "Kernel", "partial")))
		assert.Equal(t, float64(1), testutil.ToFloat64(c.Groups.WithLabelValues("ze", "ImageExp", "skipped")))
		assert.Equal(t, float64(1), testutil.ToFloat64(c.Groups.WithLabelValues("ze", "Fence", "failed")))
		assert.Equal(t, float64(28), testutil.ToFloat64(c.Symbols.WithLabelValues("ze", "resolved")))
		assert.Equal(t, float64(8), testutil.ToFloat64(c.Symbols.WithLabelValues("ze", "missing")))
	})
	t.Run("builds", func(t *testing.T) {
		c.BuildFinished(time.Millisecond, nil)
		c.BuildFinished(time.Millisecond, errors.New("boom"))
		c.BuildFinished(2*time.Millisecond, nil)
		assert.Equal(t, float64(2), testutil.ToFloat64(c.Builds.WithLabelValues("ok")))
		assert.Equal(t, float64(1), testutil.ToFloat64(c.Builds.WithLabelValues("failed")))
		assert.Equal(t, 1, testutil.CollectAndCount(c.Duration))
	})
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
