package usecases

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transfersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transferflow_transfers_submitted_total",
		Help: "Number of transfer submissions started",
	})
	transfersConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transferflow_transfers_confirmed_total",
		Help: "Number of transfers confirmed and persisted",
	})
	transferFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transferflow_transfer_failures_total",
		Help: "Number of failed transfer submissions by stage",
	}, []string{"stage"})
)
