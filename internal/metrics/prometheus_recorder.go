package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "parking"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	transitions   *prom.CounterVec
	registrations *prom.CounterVec
	generated     prom.Counter
	readErrors    *prom.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs and registers the parking metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Slot transitions by operation and result",
		}, []string{"operation", "result"}),
		registrations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "User registrations by result",
		}, []string{"result"}),
		generated: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tables_generated_total",
			Help:      "Slot tables generated because no usable table was stored",
		}),
		readErrors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_read_errors_total",
			Help:      "Stored records that could not be decoded",
		}, []string{"record"}),
	}
	reg.MustRegister(pr.transitions, pr.registrations, pr.generated, pr.readErrors)
	return pr
}

func (p *PrometheusRecorder) IncTransition(operation, result string) {
	p.transitions.WithLabelValues(operation, result).Inc()
}

func (p *PrometheusRecorder) IncRegistration(result string) {
	p.registrations.WithLabelValues(result).Inc()
}

func (p *PrometheusRecorder) IncTableGenerated() {
	p.generated.Inc()
}

func (p *PrometheusRecorder) IncPersistenceReadError(record string) {
	p.readErrors.WithLabelValues(record).Inc()
}

// HTTPHandler returns an http.Handler that serves metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
