package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage names used as metric labels
const (
	StageExtract = "extract"
	StageScript  = "script"
	StageSynth   = "synthesize"
	StageCommit  = "commit"
)

// Metrics records pipeline activity
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	jobs          *prometheus.CounterVec
	inFlight      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when it is not nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "docpod",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"stage", "result"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docpod",
			Subsystem: "pipeline",
			Name:      "jobs_total",
			Help:      "Podcast jobs by terminal status.",
		}, []string{"status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "docpod",
			Subsystem: "pipeline",
			Name:      "jobs_in_flight",
			Help:      "Podcast jobs currently being processed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.stageDuration, m.jobs, m.inFlight)
	}
	return m
}

func (m *Metrics) observeStage(stage string, start time.Time, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.stageDuration.WithLabelValues(stage, result).Observe(time.Since(start).Seconds())
}

func (m *Metrics) finished(status string) {
	m.jobs.WithLabelValues(status).Inc()
}
