package scan

import (
	"time"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "seca_host"

// Metrics tracks scan activity in a Prometheus registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	checksTotal   *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	scansTotal    *prometheus.CounterVec
	score         prometheus.Gauge
	running       prometheus.Gauge
	lastScan      prometheus.Gauge
	checkStatus   *prometheus.GaugeVec
}

// NewMetrics registers the scan collectors on reg, or on a fresh registry
// when reg is nil.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		checksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "checks_evaluated_total",
				Help:      "Total number of checks evaluated, by resulting status",
			},
			[]string{"status"},
		),
		probeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "check_duration_seconds",
				Help:      "Time spent evaluating a single check",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"category"},
		),
		scansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "scans_total",
				Help:      "Total number of scans, by outcome",
			},
			[]string{"outcome"},
		),
		score: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "score",
			Help:      "Compliance score of the last completed scan",
		}),
		running: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "scan_running",
			Help:      "1 while a scan is in progress",
		}),
		lastScan: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_scan_timestamp_seconds",
			Help:      "Unix time of the last completed scan",
		}),
		checkStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "check_status",
				Help:      "Status rank of each check in the last scan (2 pass, 1 warning, 0 fail or unknown)",
			},
			[]string{"check", "category"},
		),
	}
}

// Registry exposes the underlying registry for HTTP handlers
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes the current metrics in the node_exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) scanStarted() {
	if m == nil {
		return
	}
	m.running.Set(1)
}

func (m *Metrics) observeResult(result *check.Result, took time.Duration) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(string(result.Status())).Inc()
	m.probeDuration.WithLabelValues(string(result.Category())).Observe(took.Seconds())
	m.checkStatus.WithLabelValues(result.CheckID(), string(result.Category())).Set(float64(result.Status().Rank()))
}

func (m *Metrics) scanFinished(report *check.Report, cancelled bool) {
	if m == nil {
		return
	}
	m.running.Set(0)
	if cancelled {
		m.scansTotal.WithLabelValues("cancelled").Inc()
		return
	}
	m.scansTotal.WithLabelValues("completed").Inc()
	m.score.Set(report.Score())
	m.lastScan.Set(float64(report.Timestamp().Unix()))
}
