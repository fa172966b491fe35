package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the eligibility module. A nil *Metrics
// is a no-op so tests can skip registration.
type Metrics struct {
	// Evaluation latency by mode: "stored", "stateless", "calculator"
	EvaluateLatency *prometheus.HistogramVec

	// Per-program outcomes
	ProgramOutcome *prometheus.CounterVec

	// Requests rejected because onboarding is incomplete
	IncompleteProfiles prometheus.Counter

	// Calculator requests by formula type
	Calculations *prometheus.CounterVec

	// Rules that panicked and were degraded to ReasonEvaluationError
	RuleErrors *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		EvaluateLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "benefitscout_eligibility_evaluate_duration_seconds",
			Help:    "Duration of eligibility evaluation by mode",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"mode"}),

		ProgramOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "benefitscout_eligibility_program_outcomes_total",
			Help: "Eligibility outcomes per program",
		}, []string{"program", "eligible"}),

		IncompleteProfiles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "benefitscout_eligibility_incomplete_profiles_total",
			Help: "Eligibility requests rejected because onboarding is incomplete",
		}),

		Calculations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "benefitscout_benefit_calculations_total",
			Help: "Calculator requests by benefit type",
		}, []string{"type"}),

		RuleErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "benefitscout_eligibility_rule_errors_total",
			Help: "Eligibility rules that failed during evaluation",
		}, []string{"program"}),
	}
}

func (m *Metrics) ObserveEvaluateLatency(mode string, d time.Duration) {
	if m != nil {
		m.EvaluateLatency.WithLabelValues(mode).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementOutcome(program string, eligible bool) {
	if m == nil {
		return
	}
	label := "false"
	if eligible {
		label = "true"
	}
	m.ProgramOutcome.WithLabelValues(program, label).Inc()
}

func (m *Metrics) IncrementIncompleteProfile() {
	if m != nil {
		m.IncompleteProfiles.Inc()
	}
}

func (m *Metrics) IncrementCalculation(benefitType string) {
	if m != nil {
		m.Calculations.WithLabelValues(benefitType).Inc()
	}
}

func (m *Metrics) IncrementRuleError(program string) {
	if m != nil {
		m.RuleErrors.WithLabelValues(program).Inc()
	}
}
