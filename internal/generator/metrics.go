package generator

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	rendered *prometheus.CounterVec
	requests *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		rendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "certificates_rendered_total",
				Help: "Certificates rendered, by status.",
			},
			[]string{"status"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "certificate_requests_total",
				Help: "Generate requests, by outcome.",
			},
			[]string{"outcome"},
		),
	}

	for _, collector := range []prometheus.Collector{m.rendered, m.requests} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) certificateRendered(ok bool) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "error"
	}
	m.rendered.WithLabelValues(status).Inc()
}

func (m *Metrics) requestDone(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}
