package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initHistoryMetrics() {
	r.HistoryRecordsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "anchornav_history_records",
			Help: "Records held in the anchor history by kind",
		},
		[]string{"kind"},
	)

	r.HistoryPrunedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "anchornav_history_pruned_total",
			Help: "Anchor history records dropped for exceeding the maximum age",
		},
	)

	r.HistoryRejectedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchornav_history_rejected_total",
			Help: "History records rejected by validation",
		},
		[]string{"kind"},
	)
}
