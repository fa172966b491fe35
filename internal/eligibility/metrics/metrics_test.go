package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementRuleError(t *testing.T) {
	m := &Metrics{
		RuleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "rule_errors"}, []string{"program"}),
	}

	m.IncrementRuleError("snap")
	m.IncrementRuleError("snap")
	m.IncrementRuleError("ssi")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RuleErrors.WithLabelValues("snap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleErrors.WithLabelValues("ssi")))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEvaluateLatency("stored", time.Millisecond)
		m.IncrementOutcome("snap", true)
		m.IncrementIncompleteProfile()
		m.IncrementCalculation("ssi")
		m.IncrementRuleError("snap")
	})
}
