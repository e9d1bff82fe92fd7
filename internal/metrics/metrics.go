package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_ws_connections",
			Help: "Currently open websocket connections",
		},
	)

	MessagesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_stored_total",
			Help: "Messages persisted to the live store",
		},
		[]string{"type"},
	)

	BroadcastsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_broadcast_sends_total",
			Help: "Payloads queued to connection send buffers",
		},
	)

	BroadcastsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_broadcast_dropped_total",
			Help: "Payloads dropped because a connection's send buffer was full",
		},
	)

	BatchesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_batches_created_total",
			Help: "Archival batches created",
		},
	)

	CompactionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_compaction_failures_total",
			Help: "Failed compaction attempts (retried on next insert)",
		},
	)

	HistoryRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_history_requests_total",
			Help: "History page reads",
		},
	)
)
