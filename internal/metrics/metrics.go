// Package metrics holds the prometheus collectors of the viewer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a private registry with the viewer's collectors. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	frames            prometheus.Counter
	frameDuration     prometheus.Histogram
	rejectedFrames    prometheus.Counter
	portalPasses      prometheus.Counter
	assetLoads        *prometheus.CounterVec
	assetLoadDuration prometheus.Histogram
	assetsInFlight    prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "portal_frames_total",
			Help: "Number of frames rendered",
		}),
		frameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "portal_frame_duration_seconds",
			Help:    "Time spent rendering one frame, both passes included",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		rejectedFrames: f.NewCounter(prometheus.CounterOpts{
			Name: "portal_frames_rejected_total",
			Help: "Frame callbacks ignored because a frame was already in progress",
		}),
		portalPasses: f.NewCounter(prometheus.CounterOpts{
			Name: "portal_offscreen_passes_total",
			Help: "Number of portal scene renders into the render target",
		}),
		assetLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_asset_loads_total",
			Help: "Asset loads by result",
		}, []string{"result"}),
		assetLoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "portal_asset_load_duration_seconds",
			Help:    "Time to fetch and parse one asset",
			Buckets: prometheus.DefBuckets,
		}),
		assetsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "portal_assets_in_flight",
			Help: "Asset loads started and not yet finished",
		}),
	}
}

// Frame records one rendered frame.
func (m *Metrics) Frame(d time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameDuration.Observe(d.Seconds())
}

// FrameRejected records a re-entrant frame callback.
func (m *Metrics) FrameRejected() {
	if m == nil {
		return
	}
	m.rejectedFrames.Inc()
}

// PortalPass records one offscreen render.
func (m *Metrics) PortalPass() {
	if m == nil {
		return
	}
	m.portalPasses.Inc()
}

// AssetStarted records the start of a load.
func (m *Metrics) AssetStarted() {
	if m == nil {
		return
	}
	m.assetsInFlight.Inc()
}

// AssetFinished records the end of a load.
func (m *Metrics) AssetFinished(err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.assetsInFlight.Dec()
	m.assetLoads.WithLabelValues(result).Inc()
	m.assetLoadDuration.Observe(d.Seconds())
}
