package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agritrace_records_created_total",
		Help: "Total number of traceability records appended to the ledger.",
	})

	RecordVerifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agritrace_record_verifications_total",
		Help: "Total number of verification increments applied to ledger records.",
	})

	AuthzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agritrace_authz_decisions_total",
		Help: "Total number of authorization decisions, labelled by action and outcome.",
	}, []string{"action", "decision"})

	OutboxPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agritrace_outbox_published_total",
		Help: "Total number of outbox events relayed to the message bus.",
	})
)
