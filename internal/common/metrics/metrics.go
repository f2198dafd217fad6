package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shareit_bookings_created_total",
		Help: "Total number of bookings successfully created.",
	})

	BookingDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_booking_decisions_total",
		Help: "Total number of owner decisions on bookings, by resulting status.",
	},
		[]string{"status"},
	)

	CommentsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shareit_comments_added_total",
		Help: "Total number of comments successfully added to items.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	EventsPublishFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shareit_events_publish_failed_total",
		Help: "Total number of domain events that could not be published.",
	})
)

// RegisterRoutes exposes the default registry at /metrics.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
