// Package metrics provides a Prometheus-backed collector for wallet
// operation metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements the wallet service's MetricsCollector
// against a Prometheus registry.
type PrometheusCollector struct {
	transactions *prometheus.CounterVec
	volume       *prometheus.CounterVec
	errors       *prometheus.CounterVec
	balances     *prometheus.GaugeVec
}

// NewPrometheusCollector registers the wallet metric vectors on reg and
// returns the collector. Pass prometheus.DefaultRegisterer outside tests.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transactions_total",
			Help: "Posted wallet transactions by type.",
		}, []string{"type"}),
		volume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transaction_volume_total",
			Help: "Sum of posted wallet transaction amounts by type.",
		}, []string{"type"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_operation_errors_total",
			Help: "Failed wallet operations by operation and error type.",
		}, []string{"operation", "error"}),
		balances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "wallet_balance",
			Help: "Last observed balance per wallet.",
		}, []string{"wallet_id"}),
	}
	reg.MustRegister(c.transactions, c.volume, c.errors, c.balances)
	return c
}

func (c *PrometheusCollector) RecordTransaction(txType string, amount float64) {
	c.transactions.WithLabelValues(txType).Inc()
	c.volume.WithLabelValues(txType).Add(amount)
}

func (c *PrometheusCollector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}

func (c *PrometheusCollector) RecordBalanceChange(walletID string, oldBalance, newBalance float64) {
	c.balances.WithLabelValues(walletID).Set(newBalance)
}
