package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reads answered by each tier, partitioned by feature and operation
	tierReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "masjidapp_tier_reads_total",
			Help: "Reads answered per tier",
		},
		[]string{"feature", "operation", "tier"},
	)

	// Fast tier errors absorbed during reads
	tierFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "masjidapp_tier_fallbacks_total",
			Help: "Reads that fell through from the fast tier to the durable tier",
		},
		[]string{"feature", "operation", "kind"},
	)

	// Fast tier errors ignored during writes
	tierWriteFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "masjidapp_tier_fast_write_failures_total",
			Help: "Fast tier write attempts that failed and were skipped",
		},
		[]string{"feature", "operation", "kind"},
	)
)
