package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	DebitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thanks_debits_total",
			Help: "Debit attempts by outcome",
		},
		[]string{"outcome"}, // applied|insufficient_funds|account_not_found|pool_exhausted|store_error
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(DebitsTotal)
}

// RegisterPoolStats exposes the connection pool's live state as gauges.
func RegisterPoolStats(pool *pgxpool.Pool) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "db_pool_total_conns", Help: "Open connections in the pool"},
		func() float64 { return float64(pool.Stat().TotalConns()) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "db_pool_acquired_conns", Help: "Connections currently handed out"},
		func() float64 { return float64(pool.Stat().AcquiredConns()) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "db_pool_idle_conns", Help: "Connections idle in the pool"},
		func() float64 { return float64(pool.Stat().IdleConns()) },
	))
}
