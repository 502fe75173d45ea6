package parser

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tagRecoveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nyx_engine_tag_recoveries_total",
			Help: "Total number of locally recovered markup anomalies.",
		},
		[]string{"kind"}, // unclosed, mismatched_close
	)
	parsedTagsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nyx_engine_parsed_tags_total",
			Help: "Total number of recognized tag spans aggregated into fields.",
		},
		[]string{"field"},
	)
)
