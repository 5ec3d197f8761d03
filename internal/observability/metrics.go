package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OptimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_optimizations_total",
		Help: "Optimization requests by platform, mode and outcome",
	}, []string{"platform", "mode", "status"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "listing_generation_duration_seconds",
		Help:    "Wall time of a content generation call including retries",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90},
	}, []string{"model"})

	GenerationAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "listing_generation_attempts",
		Help:    "Attempts spent per content generation call",
		Buckets: []float64{1, 2, 3, 4, 5, 6},
	})

	GenerationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_generation_errors_total",
		Help: "Failed content generation attempts by error kind",
	}, []string{"kind"})

	QualityScore = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "listing_quality_score",
		Help:    "Overall SEO score of optimized listings",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	}, []string{"platform"})

	ScrapesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_scrapes_total",
		Help: "Listing page scrapes by detected platform and outcome",
	}, []string{"platform", "status"})

	QuotaRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_quota_rejections_total",
		Help: "Requests refused because the monthly allowance was used up",
	}, []string{"tier"})
)
