package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoadsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_loads_created_total",
		Help: "Total number of loads successfully created.",
	})

	LoadsValidatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_loads_validated_total",
		Help: "Total number of loads promoted to VALID.",
	})

	ReleasesConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_releases_confirmed_total",
		Help: "Total number of one-time release confirmations.",
	})

	ConfirmFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_confirm_failures_total",
		Help: "Release confirmation attempts rejected, by reason.",
	},
		[]string{"reason"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	NotificationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_notification_failures_total",
		Help: "Notification side effects that failed, by stage.",
	},
		[]string{"stage"},
	)

	LoadCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portal_load_cache_items",
		Help: "Current number of loads in the verification-token cache.",
	})
)
