package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "users_registered_total",
		Help: "Total number of registered users",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Total number of login attempts",
	}, []string{"result"})

	EntitiesSoftDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entities_soft_deleted_total",
		Help: "Total number of soft-deleted records",
	}, []string{"entity"})

	EntitiesRestoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entities_restored_total",
		Help: "Total number of restored records",
	}, []string{"entity"})

	SessionsEvictedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_evicted_total",
		Help: "Total number of sessions evicted by a newer login",
	})

	BackgroundTasksSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "background_tasks_submitted_total",
		Help: "Total number of background tasks accepted by the pool",
	}, []string{"kind"})

	BackgroundTasksRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "background_tasks_rejected_total",
		Help: "Total number of background tasks rejected (queue full)",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
