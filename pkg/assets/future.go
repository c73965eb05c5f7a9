package assets

import (
	"sync"

	"github.com/google/uuid"

	"github.com/taigrr/portal/pkg/models"
)

// Handler receives a loaded mesh.
type Handler func(mesh *models.Mesh)

// Future is the pending result of a Load.
type Future struct {
	ID   uuid.UUID
	Path string

	provider *Provider
	done     chan struct{}

	mu       sync.Mutex
	mesh     *models.Mesh
	err      error
	finished bool
	queued   bool
	handlers []Handler
	ran      int
}

// Then registers h to run on the Poll after the load succeeds. Handlers
// registered after completion run on the next Poll.
func (f *Future) Then(h Handler) *Future {
	f.mu.Lock()
	f.handlers = append(f.handlers, h)
	requeue := f.finished && !f.queued && f.err == nil
	if requeue {
		f.queued = true
	}
	f.mu.Unlock()

	if requeue {
		f.provider.enqueue(f)
	}
	return f
}

// Done is closed when the load finished.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the mesh or error once Done is closed.
func (f *Future) Result() (*models.Mesh, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mesh, f.err
}

func (f *Future) complete(mesh *models.Mesh, err error) {
	f.mu.Lock()
	f.mesh, f.err, f.finished = mesh, err, true
	f.queued = err == nil
	f.mu.Unlock()

	if err == nil {
		f.provider.enqueue(f)
	}
	close(f.done)
}

func (f *Future) deliver() int {
	f.mu.Lock()
	pending := f.handlers[f.ran:]
	f.ran = len(f.handlers)
	f.queued = false
	mesh := f.mesh
	f.mu.Unlock()

	for _, h := range pending {
		h(mesh)
	}
	return len(pending)
}
