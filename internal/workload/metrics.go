package workload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	frames      *prometheus.CounterVec
	ops         *prometheus.CounterVec
	exhaustions *prometheus.CounterVec
	bytesInUse  *prometheus.GaugeVec
	capacity    prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) *metrics {
	return &metrics{
		frames: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: "regionbench",
			Name:      "frames_total",
			Help:      "Total number of frames completed per worker.",
		}, []string{"worker"}),
		ops: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: "regionbench",
			Name:      "ops_total",
			Help:      "Total number of order book operations applied per worker.",
		}, []string{"worker"}),
		exhaustions: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: "regionbench",
			Name:      "exhaustions_total",
			Help:      "Total number of frames cut short because the worker region ran out of memory.",
		}, []string{"worker"}),
		bytesInUse: promauto.With(r).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "regionbench",
			Name:      "region_bytes_in_use",
			Help:      "Bytes handed out from the worker region at the end of the last frame.",
		}, []string{"worker"}),
		capacity: promauto.With(r).NewGauge(prometheus.GaugeOpts{
			Namespace: "regionbench",
			Name:      "region_capacity_bytes",
			Help:      "Size of the region reserved for all workers.",
		}),
	}
}
