// Package metrics exposes scanner counters over Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the scanner.
type Metrics struct {
	registry *prometheus.Registry

	ScanCycles     prometheus.Counter
	SymbolsScanned prometheus.Counter
	FetchErrors    prometheus.Counter
	SignalsEmitted *prometheus.CounterVec
	Duplicates     prometheus.Counter
	JournalErrors  prometheus.Counter
	CycleDuration  prometheus.Histogram
}

// New registers and returns all scanner metrics. Each Metrics value
// carries its own registry, so constructing more than one never trips
// duplicate registration.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ScanCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mt5scan_cycles_total",
			Help: "Completed scan cycles",
		}),
		SymbolsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mt5scan_symbols_scanned_total",
			Help: "Symbol/timeframe combinations scanned",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mt5scan_fetch_errors_total",
			Help: "Candle fetch failures",
		}),
		SignalsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mt5scan_signals_total",
			Help: "Signals journaled (by strategy and direction)",
		}, []string{"strategy", "direction"}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mt5scan_duplicates_suppressed_total",
			Help: "Signals suppressed by the journal dedup window",
		}),
		JournalErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mt5scan_journal_errors_total",
			Help: "Journal write failures other than duplicates",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mt5scan_cycle_duration_seconds",
			Help:    "Full scan cycle duration",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}

	m.registry.MustRegister(
		m.ScanCycles,
		m.SymbolsScanned,
		m.FetchErrors,
		m.SignalsEmitted,
		m.Duplicates,
		m.JournalErrors,
		m.CycleDuration,
	)

	return m
}

// Handler serves this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
