package assets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/portal/internal/metrics"
	"github.com/taigrr/portal/pkg/models"
)

// gatedLoader blocks each path until its gate is closed.
type gatedLoader map[string]chan struct{}

func (g gatedLoader) load(ctx context.Context, path string) (*models.Mesh, error) {
	select {
	case <-g[path]:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if path == "broken.glb" {
		return nil, errors.New("bad magic")
	}
	return models.NewBox(1, 1, 1), nil
}

func waitDone(t *testing.T, f *Future) {
	t.Helper()
	select {
	case <-f.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("load of %s never finished", f.Path)
	}
}

func TestHandlersRunOnlyOnPoll(t *testing.T) {
	gates := gatedLoader{"ground.glb": make(chan struct{})}
	p := NewProvider(WithLoadFunc(gates.load), WithMetrics(metrics.New()))

	var got *models.Mesh
	f := p.Load(context.Background(), "ground.glb").Then(func(m *models.Mesh) { got = m })
	assert.Equal(t, 0, p.Poll(), "nothing completed yet")

	close(gates["ground.glb"])
	waitDone(t, f)
	assert.Nil(t, got, "handler must not run on the loader goroutine")

	assert.Equal(t, 1, p.Poll())
	require.NotNil(t, got)
	assert.Equal(t, 12, got.TriangleCount())
	assert.Equal(t, 0, p.Poll(), "handlers run once")
}

func TestHandlersFollowCompletionOrder(t *testing.T) {
	gates := gatedLoader{"a.glb": make(chan struct{}), "b.glb": make(chan struct{})}
	p := NewProvider(WithLoadFunc(gates.load))

	var order []string
	fa := p.Load(context.Background(), "a.glb").Then(func(*models.Mesh) { order = append(order, "a") })
	fb := p.Load(context.Background(), "b.glb").Then(func(*models.Mesh) { order = append(order, "b") })

	close(gates["b.glb"])
	waitDone(t, fb)
	close(gates["a.glb"])
	waitDone(t, fa)

	require.NoError(t, p.Wait(context.Background()))
	assert.Equal(t, 2, p.Poll())
	assert.Equal(t, []string{"b", "a"}, order)
	assert.NotEqual(t, fa.ID, fb.ID)
}

func TestFailedLoadSkipsHandlers(t *testing.T) {
	gates := gatedLoader{"broken.glb": make(chan struct{})}
	close(gates["broken.glb"])
	p := NewProvider(WithLoadFunc(gates.load))

	called := false
	f := p.Load(context.Background(), "broken.glb").Then(func(*models.Mesh) { called = true })
	waitDone(t, f)

	_, err := f.Result()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load broken.glb")
	assert.Equal(t, 0, p.Poll())
	assert.False(t, called)
}

func TestThenAfterDelivery(t *testing.T) {
	gates := gatedLoader{"trees.glb": make(chan struct{})}
	close(gates["trees.glb"])
	p := NewProvider(WithLoadFunc(gates.load))

	first, second := 0, 0
	f := p.Load(context.Background(), "trees.glb").Then(func(*models.Mesh) { first++ })
	waitDone(t, f)
	require.Equal(t, 1, p.Poll())

	f.Then(func(*models.Mesh) { second++ })
	assert.Equal(t, 1, p.Poll())
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestWaitHonorsContext(t *testing.T) {
	gates := gatedLoader{"slow.glb": make(chan struct{})}
	p := NewProvider(WithLoadFunc(gates.load))

	loadCtx, cancelLoad := context.WithCancel(context.Background())
	defer cancelLoad()
	p.Load(loadCtx, "slow.glb")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.DeadlineExceeded)

	cancelLoad()
	assert.NoError(t, p.Wait(context.Background()))
}

func TestResolve(t *testing.T) {
	p := NewProvider(WithBaseDir("/srv/assets"))
	assert.Equal(t, filepath.Join("/srv/assets", "glb", "forest-trees.glb"), p.Resolve("/glb/forest-trees.glb"))
	assert.Equal(t, "/glb/x.glb", NewProvider().Resolve("/glb/x.glb"))
}

func TestDefaultLoaderReportsMissingFile(t *testing.T) {
	p := NewProvider(WithBaseDir(t.TempDir()))
	f := p.Load(context.Background(), "/glb/missing.glb")
	waitDone(t, f)
	_, err := f.Result()
	assert.Error(t, err)
}
