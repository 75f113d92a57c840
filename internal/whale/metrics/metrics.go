package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xrpwhale_records_processed_total",
		Help: "Stream records processed, labelled by outcome.",
	}, []string{"outcome"})

	RecordsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xrpwhale_records_skipped_total",
		Help: "Stream records that did not reach the windows, labelled by reason.",
	}, []string{"reason"})

	WhaleAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "xrpwhale_payment_amount_xrp",
		Help:    "XRP amount of qualifying payments.",
		Buckets: []float64{10, 100, 1000, 5000, 10000, 50000, 100000, 1000000},
	})

	WindowSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "xrpwhale_window_size",
		Help: "Current number of entries per window.",
	}, []string{"window"})

	FeedConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "xrpwhale_feed_connected",
		Help: "1 while the feed subscription is live.",
	})

	FeedReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xrpwhale_feed_reconnects_total",
		Help: "Number of times the feed consumer re-established its subscription.",
	})

	FeedErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xrpwhale_feed_errors_total",
		Help: "Transport failures, labelled by operation.",
	}, []string{"op"})

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "xrpwhale_query_duration_seconds",
		Help:    "Latency of view queries.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	})
)
