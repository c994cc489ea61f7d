package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	depositsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_deposits_total",
		Help: "Total number of fund deposits recorded",
	})

	withdrawalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_withdrawals_total",
		Help: "Total number of fund withdrawals recorded",
	})

	ordersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "treasury_orders_total",
			Help: "Total number of order lifecycle events",
		},
		[]string{"event"},
	)

	policyViolationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_policy_violations_total",
		Help: "Total number of orders blocked by the investment policy",
	})

	settlementRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_settlement_runs_total",
		Help: "Total number of settlement engine runs",
	})

	settlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "treasury_settlement_duration_seconds",
		Help:    "Duration of settlement engine runs",
		Buckets: prometheus.DefBuckets,
	})

	ordersSettledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_orders_settled_total",
		Help: "Total number of orders settled by the engine",
	})

	holdingsMaturedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_holdings_matured_total",
		Help: "Total number of holdings paid out at maturity",
	})

	loginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "treasury_logins_total",
		Help: "Total number of successful logins",
	})
)

// RecordDeposit counts a completed fund deposit.
func RecordDeposit() { depositsTotal.Inc() }

// RecordWithdrawal counts a completed fund withdrawal.
func RecordWithdrawal() { withdrawalsTotal.Inc() }

// RecordOrderEvent counts an order lifecycle event (created, approved, rejected).
func RecordOrderEvent(event string) { ordersTotal.WithLabelValues(event).Inc() }

// RecordPolicyViolation counts an order blocked by policy.
func RecordPolicyViolation() { policyViolationsTotal.Inc() }

// RecordSettlementRun counts one engine run and its outcome.
func RecordSettlementRun(elapsed time.Duration, settled, matured int) {
	settlementRunsTotal.Inc()
	settlementDuration.Observe(elapsed.Seconds())
	ordersSettledTotal.Add(float64(settled))
	holdingsMaturedTotal.Add(float64(matured))
}

// RecordLogin counts a successful login.
func RecordLogin() { loginsTotal.Inc() }
