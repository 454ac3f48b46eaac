package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "mountns"

const (
	NameMounts     = "mounts"
	NameOperations = "operations_total"

	LabelOperation = "operation"
	LabelStatus    = "status"

	StatusSuccess = "success"
	StatusError   = "error"
)

var Mounts = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      NameMounts,
		Help:      "Current number of mount table entries",
		Namespace: Namespace,
	},
)

var Operations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameOperations,
		Help:      "Total mount table operations",
		Namespace: Namespace,
	},
	[]string{LabelOperation, LabelStatus},
)

func ObserveOperation(operation string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}

	Operations.WithLabelValues(operation, status).Inc()
}
