package notify

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsPublisher counts committed order changes by event type and the
// status they moved to.
type MetricsPublisher struct {
	changes *prometheus.CounterVec
}

func NewMetricsPublisher(registerer prometheus.Registerer) *MetricsPublisher {
	changes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fulfillment",
		Name:      "order_status_changes_total",
		Help:      "Committed sales order changes by event type and resulting status.",
	}, []string{"type", "status"})
	registerer.MustRegister(changes)
	return &MetricsPublisher{changes: changes}
}

func (p *MetricsPublisher) Publish(_ context.Context, events ...order.StatusChanged) error {
	for _, event := range events {
		p.changes.WithLabelValues(string(event.Type), event.Current.String()).Inc()
	}
	return nil
}
