package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 历史写入路径的运行指标，经私有监听的 /metrics 暴露
var (
	metricCaptureTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "history_capture_total",
		Help: "Total number of history entries captured.",
	})
	metricDuplicateSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "history_duplicate_skipped_total",
		Help: "Total number of captures skipped as consecutive duplicates.",
	})
	metricEvictedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "history_evicted_total",
		Help: "Total number of entries evicted over the capacity cap.",
	})
)
