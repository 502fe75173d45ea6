package scene

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesEmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nyx_engine_frames_emitted_total",
			Help: "Total number of validated frames emitted.",
		},
	)
	sceneSegments = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nyx_engine_scene_segments",
			Help:    "Histogram of segment counts per scene description.",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)
)
