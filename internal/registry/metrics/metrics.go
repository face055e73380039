package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module. Creations are
// counted per entity kind; rejections per error code.
type Metrics struct {
	EntitiesCreated   *prometheus.CounterVec
	CreationsRejected *prometheus.CounterVec
	CreateDuration    prometheus.Histogram
}

// New creates a Metrics instance with all registry metrics registered on the
// default registerer.
func New() *Metrics {
	return &Metrics{
		EntitiesCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "waybill_entities_created_total",
			Help: "Total number of registry records created, by entity kind",
		}, []string{"kind"}),
		CreationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "waybill_creations_rejected_total",
			Help: "Total number of rejected creation requests, by entity kind and error code",
		}, []string{"kind", "code"}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "waybill_create_duration_seconds",
			Help:    "Duration of registry creation operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCreated records a successful creation for the given entity kind.
func (m *Metrics) IncrementCreated(kind string) {
	m.EntitiesCreated.WithLabelValues(kind).Inc()
}

// IncrementRejected records a rejected creation.
func (m *Metrics) IncrementRejected(kind, code string) {
	m.CreationsRejected.WithLabelValues(kind, code).Inc()
}

// ObserveCreate records the duration of a creation operation. Call with
// time.Now() from the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}
