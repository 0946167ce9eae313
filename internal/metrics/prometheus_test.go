package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCollector(t *testing.T) {
	c := NewPrometheusCollector(prometheus.NewRegistry())

	c.RecordTransaction("credit", 10)
	c.RecordTransaction("credit", 5)
	c.RecordTransaction("debit", 6)
	c.RecordError("debit", "insufficient_balance")
	c.RecordBalanceChange("wallet-1", 0, 10)
	c.RecordBalanceChange("wallet-1", 10, 4)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.transactions.WithLabelValues("credit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.transactions.WithLabelValues("debit")))
	assert.Equal(t, float64(15), testutil.ToFloat64(c.volume.WithLabelValues("credit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.errors.WithLabelValues("debit", "insufficient_balance")))
	// The gauge tracks the latest balance, not a sum.
	assert.Equal(t, float64(4), testutil.ToFloat64(c.balances.WithLabelValues("wallet-1")))
}

func TestPrometheusCollector_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusCollector(reg)

	// Registering the same vectors twice must panic via MustRegister.
	assert.Panics(t, func() { NewPrometheusCollector(reg) })
}
