// Package observability exposes Prometheus metrics for application events.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal counts successful account registrations.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_signups_total",
		Help: "Total number of successful account registrations",
	})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// PostsCreatedTotal counts posts created.
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Total number of posts created",
	})

	// PostViewsTotal counts post reads that incremented a view counter.
	PostViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_post_views_total",
		Help: "Total number of post views",
	})

	// AuthRejectionsTotal counts requests turned away by the authentication gate.
	AuthRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_auth_rejections_total",
		Help: "Total number of requests rejected by the authentication gate",
	})

	// CacheErrorsTotal counts cache failures by operation type.
	CacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_errors_total",
		Help: "Total number of cache errors by operation type",
	}, []string{"operation"})
)
