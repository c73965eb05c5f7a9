package portal

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/portal/internal/metrics"
)

// LoopState is the render loop's position in the frame cycle.
type LoopState int32

const (
	Idle LoopState = iota
	Rendering
)

func (s LoopState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// FrameRequester schedules one call of cb with the time since the loop
// started. Hosts must not call cb from inside RequestFrame.
type FrameRequester interface {
	RequestFrame(cb func(ts time.Duration))
}

// Poller delivers completed asset loads.
type Poller interface {
	Poll() int
}

// FrameInfo describes a finished frame.
type FrameInfo struct {
	Number uint64
	Time   time.Duration
	Took   time.Duration
}

// Presenter shows a finished frame: drawing it to a terminal, publishing a
// snapshot, and so on.
type Presenter func(st *State, info FrameInfo)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithPoller drains completed asset loads at the start of every frame.
func WithPoller(p Poller) LoopOption {
	return func(l *Loop) { l.assets = p }
}

// WithPresenter is called after the primary scene is rendered.
func WithPresenter(p Presenter) LoopOption {
	return func(l *Loop) { l.present = p }
}

// WithLoopLogger sets the logger.
func WithLoopLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) { l.log = log }
}

// WithLoopMetrics records frame counts and durations.
func WithLoopMetrics(m *metrics.Metrics) LoopOption {
	return func(l *Loop) { l.metrics = m }
}

// Loop drives frames: poll assets, animate, composite the portal, update
// controls, render the primary scene, present, schedule the next frame.
type Loop struct {
	st      *State
	assets  Poller
	present Presenter
	log     *zap.Logger
	metrics *metrics.Metrics

	host   FrameRequester
	state  atomic.Int32
	frames atomic.Uint64
}

// NewLoop creates a loop over st.
func NewLoop(st *State, opts ...LoopOption) *Loop {
	l := &Loop{st: st, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	if st.Metrics == nil {
		st.Metrics = l.metrics
	}
	return l
}

// Start requests the first frame from host. Every frame requests the next,
// so the loop runs until the host stops calling back.
func (l *Loop) Start(host FrameRequester) {
	l.host = host
	host.RequestFrame(l.Frame)
}

// State returns the current loop state.
func (l *Loop) State() LoopState {
	return LoopState(l.state.Load())
}

// Frames returns the number of frames rendered.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Frame renders one frame for time ts since start. A call made while a frame
// is already rendering is dropped.
func (l *Loop) Frame(ts time.Duration) {
	if !l.state.CompareAndSwap(int32(Idle), int32(Rendering)) {
		l.log.Warn("Frame requested while rendering, dropped", zap.Duration("ts", ts))
		l.metrics.FrameRejected()
		return
	}
	start := time.Now()
	st := l.st
	t := ts.Seconds()

	if l.assets != nil {
		if n := l.assets.Poll(); n > 0 {
			l.log.Debug("Attached loaded assets", zap.Int("handlers", n))
		}
	}
	for _, a := range st.Animations {
		a.Apply(t)
	}

	Composite(st, t)

	if st.Controls != nil {
		st.Controls.Update()
	}
	st.Renderer.Render(st.Scene, st.Camera)

	n := l.frames.Add(1)
	took := time.Since(start)
	if l.present != nil {
		l.present(st, FrameInfo{Number: n, Time: ts, Took: took})
	}
	l.metrics.Frame(took)

	l.state.Store(int32(Idle))
	if l.host != nil {
		l.host.RequestFrame(l.Frame)
	}
}
