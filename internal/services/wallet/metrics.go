package wallet

// MetricsCollector receives operation outcomes from the wallet service.
type MetricsCollector interface {
	RecordTransaction(txType string, amount float64)
	RecordError(operation, errType string)
	RecordBalanceChange(walletID string, oldBalance, newBalance float64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransaction(string, float64)            {}
func (NoopMetricsCollector) RecordError(string, string)                   {}
func (NoopMetricsCollector) RecordBalanceChange(string, float64, float64) {}
