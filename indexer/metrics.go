package indexer

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "eurium"
	subsystem = "indexer"
)

// Metrics exports indexer progress and mirrored ledger figures.
type Metrics struct {
	events      *prometheus.CounterVec
	height      prometheus.Gauge
	totalSupply prometheus.Gauge
	escrowed    prometheus.Gauge
	pending     prometheus.Gauge
	emergency   prometheus.Counter
	violations  prometheus.Counter
	errors      prometheus.Counter
}

// NewMetrics creates metrics and registers them in the registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_total",
			Help:      "Number of processed contract notifications",
		}, []string{"event"}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "height",
			Help:      "Index of the next block to process",
		}),
		totalSupply: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "total_supply",
			Help:      "Mirrored total supply in base units",
		}),
		escrowed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "escrowed",
			Help:      "Amount held in escrow by pending redemptions in base units",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pending_redemptions",
			Help:      "Number of pending redemption requests",
		}),
		emergency: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "emergency_withdrawals_total",
			Help:      "Number of emergency withdrawals from the treasury",
		}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invariant_violations_total",
			Help:      "Number of blocks rejected because of inconsistent ledger state",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "error_count",
			Help:      "Number of failed synchronization attempts",
		}),
	}

	reg.MustRegister(m.events, m.height, m.totalSupply, m.escrowed, m.pending, m.emergency, m.violations, m.errors)

	return m
}

func (m *Metrics) observe(ch Changes, s Supply) {
	for name, n := range ch.Events {
		m.events.WithLabelValues(name).Add(float64(n))
	}
	m.emergency.Add(float64(ch.Events["EmergencyWithdrawal"]))

	m.height.Set(float64(s.Height))
	m.totalSupply.Set(toFloat(s.TotalSupply))
	m.escrowed.Set(toFloat(s.Escrowed))
	m.pending.Set(float64(s.Pending))
}

func (m *Metrics) incViolations() {
	m.violations.Inc()
}

func (m *Metrics) incErrors() {
	m.errors.Inc()
}

func toFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
