package metrics_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/leveledit/internal/metrics"
	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/aretw0/leveledit/pkg/filemgr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	ctx := context.Background()

	m.Observe(ctx, &domain.PersistEvent{Op: domain.OpSave, Objects: 3, Duration: time.Millisecond})
	m.Observe(ctx, &domain.PersistEvent{Op: domain.OpSave, Err: errors.New("disk full")})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(domain.OpSave, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(domain.OpSave, "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Objects.WithLabelValues(domain.OpSave)))
}

func TestHooks_WiredIntoFileManager(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lvl.scene")

	objs := memory.NewObjects(domain.Object{ID: "a", Type: domain.TypeGroup}, domain.Object{ID: "b", Type: domain.TypeGroup})
	mgr := filemgr.New(objs, filemgr.WithHooks(m.Hooks()))

	require.NoError(t, mgr.SaveToFile(ctx, path))
	_, err := mgr.LoadFromFile(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(domain.OpLoad, "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Objects.WithLabelValues(domain.OpLoad)))

	count, err := testutil.GatherAndCount(reg, "leveledit_persist_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
