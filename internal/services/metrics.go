package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "creditcli_reports_processed_total",
		Help: "Number of documents successfully processed into reports.",
	})

	reportsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "creditcli_reports_failed_total",
		Help: "Number of documents that failed processing.",
	})

	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "creditcli_report_parse_duration_seconds",
		Help:    "End-to-end pipeline duration per document.",
		Buckets: prometheus.DefBuckets,
	})
)
