// Package assets loads model files in the background. Loads complete on their
// own goroutines but completion handlers only run when the owner calls Poll,
// so scene mutation stays on the render loop goroutine.
package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/portal/internal/metrics"
	"github.com/taigrr/portal/pkg/models"
)

// LoadFunc parses the model at path.
type LoadFunc func(ctx context.Context, path string) (*models.Mesh, error)

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Provider) { p.log = l }
}

// WithMetrics records load counts and durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

// WithBaseDir resolves asset paths relative to dir. Leading slashes are
// stripped, so "/glb/trees.glb" becomes dir/glb/trees.glb.
func WithBaseDir(dir string) Option {
	return func(p *Provider) { p.baseDir = dir }
}

// WithLoadFunc replaces the GLB parser.
func WithLoadFunc(fn LoadFunc) Option {
	return func(p *Provider) { p.load = fn }
}

// Provider starts asynchronous loads and hands their results back to a
// single owning goroutine.
type Provider struct {
	log     *zap.Logger
	metrics *metrics.Metrics
	baseDir string
	load    LoadFunc
	group   errgroup.Group

	mu    sync.Mutex
	ready []*Future
}

// NewProvider creates a provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		log:  zap.NewNop(),
		load: loadGLB,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func loadGLB(ctx context.Context, path string) (*models.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return models.NewGLTFLoader().Load(path)
}

// Resolve maps an asset path to a file path.
func (p *Provider) Resolve(path string) string {
	if p.baseDir == "" {
		return path
	}
	return filepath.Join(p.baseDir, filepath.FromSlash(strings.TrimLeft(path, "/")))
}

// Load starts loading path and returns immediately. The load is not retried.
func (p *Provider) Load(ctx context.Context, path string) *Future {
	f := &Future{
		ID:       uuid.New(),
		Path:     path,
		provider: p,
		done:     make(chan struct{}),
	}
	log := p.log.With(zap.String("request", f.ID.String()), zap.String("path", path))
	log.Debug("Loading asset")
	p.metrics.AssetStarted()

	p.group.Go(func() error {
		start := time.Now()
		mesh, err := p.load(ctx, p.Resolve(path))
		if err != nil {
			err = fmt.Errorf("load %s: %w", path, err)
		}
		p.metrics.AssetFinished(err, time.Since(start))
		if err != nil {
			log.Warn("Asset load failed", zap.Error(err))
		} else {
			log.Info("Asset loaded",
				zap.Int("vertices", mesh.VertexCount()),
				zap.Int("triangles", mesh.TriangleCount()),
				zap.Duration("took", time.Since(start)))
		}
		f.complete(mesh, err)
		return nil
	})
	return f
}

func (p *Provider) enqueue(f *Future) {
	p.mu.Lock()
	p.ready = append(p.ready, f)
	p.mu.Unlock()
}

// Poll runs the handlers of every load that completed since the last call,
// in completion order, on the calling goroutine. Failed loads run no
// handlers. It returns the number of handlers run.
func (p *Provider) Poll() int {
	p.mu.Lock()
	ready := p.ready
	p.ready = nil
	p.mu.Unlock()

	n := 0
	for _, f := range ready {
		n += f.deliver()
	}
	return n
}

// Wait blocks until every started load has finished or ctx is done.
func (p *Provider) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
