// Package metrics expõe os contadores de negócio do entreposto no formato Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/jhoicas/biocol-import-api/internal/application/entreposto"
)

const namespace = "biocol"

var _ entreposto.Metrics = (*Prometheus)(nil)

// Prometheus implementa entreposto.Metrics num registry próprio.
type Prometheus struct {
	registry           *prometheus.Registry
	admissionsCreated  *prometheus.CounterVec
	withdrawals        *prometheus.CounterVec
	admissionsFinished prometheus.Counter
}

// NewPrometheus cria o registry com os coletores de processo e runtime do Go.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		admissionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_created_total",
			Help:      "D.A. registradas, por tipo de entreposto.",
		}, []string{"warehouse_type"}),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawals_total",
			Help:      "Retiradas processadas, por resultado.",
		}, []string{"result"}),
		admissionsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_finalized_total",
			Help:      "D.A. com todo o saldo retirado.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.admissionsCreated,
		p.withdrawals,
		p.admissionsFinished,
	)
	return p
}

func (p *Prometheus) AdmissionCreated(warehouseType string) {
	p.admissionsCreated.WithLabelValues(warehouseType).Inc()
}

func (p *Prometheus) WithdrawalAccepted() {
	p.withdrawals.WithLabelValues("accepted").Inc()
}

// WithdrawalRejected reason vira o rótulo result (ex: insufficient_balance).
func (p *Prometheus) WithdrawalRejected(reason string) {
	p.withdrawals.WithLabelValues(reason).Inc()
}

func (p *Prometheus) AdmissionFinalized() {
	p.admissionsFinished.Inc()
}

// Handler handler HTTP de /metrics sobre o registry.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry usado nos testes.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
