package handler

import (
	"time"

	"github.com/mindfulme/internal/chat"
	"github.com/mindfulme/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	activities *service.ActivityService
	habits     *service.HabitService
	exports    *service.ExportService
	dispatcher *chat.Dispatcher
	metrics    *Metrics
	now        func() time.Time
}

// NewAPI constructs a handler set with shared services.
// registry may be nil, in which case metrics are kept on a private registry.
func NewAPI(db *gorm.DB, registry prometheus.Registerer) *API {
	activities := service.NewActivityService(db)
	habits := service.NewHabitService(db, activities)

	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &API{
		db:         db,
		activities: activities,
		habits:     habits,
		exports:    service.NewExportService(db),
		dispatcher: chat.NewDispatcher(activities, habits),
		metrics:    NewMetrics(registry),
		now:        time.Now,
	}
}

// SetClock overrides the time source used for "today" and export file names.
func (a *API) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	a.now = now
	a.activities.SetClock(now)
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Dispatcher exposes the chat dispatcher for non-HTTP entry points.
func (a *API) Dispatcher() *chat.Dispatcher {
	return a.dispatcher
}
