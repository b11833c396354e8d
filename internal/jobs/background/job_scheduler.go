package background

import (
	"context"
	"log"
	"time"

	"tableside/internal/events"
	"tableside/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic maintenance work: sweeping stale orders,
// purging aged audit logs and reporting event bus counters.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	orderService services.OrderService
	auditService services.AuditLogsService
	bus          *events.Bus

	staleOrderTTL      time.Duration
	staleSweepInterval time.Duration
	auditRetention     time.Duration

	jobs map[string]gocron.Job
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(orderService services.OrderService, auditService services.AuditLogsService, bus *events.Bus,
	staleOrderTTL, staleSweepInterval, auditRetention time.Duration) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:          scheduler,
		orderService:       orderService,
		auditService:       auditService,
		bus:                bus,
		staleOrderTTL:      staleOrderTTL,
		staleSweepInterval: staleSweepInterval,
		auditRetention:     auditRetention,
		jobs:               make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	staleJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.staleSweepInterval),
		gocron.NewTask(js.sweepStaleOrders, context.Background()),
		gocron.WithName("stale-order-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stale order sweep job: %v", err)
	} else {
		js.jobs["stale-order-sweep"] = staleJob
	}

	auditJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.purgeAuditLogs, context.Background()),
		gocron.WithName("audit-log-purge"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create audit purge job: %v", err)
	} else {
		js.jobs["audit-log-purge"] = auditJob
	}

	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(js.reportBusStats),
		gocron.WithName("bus-stats"),
	)
	if err != nil {
		log.Printf("Failed to create bus stats job: %v", err)
	} else {
		js.jobs["bus-stats"] = statsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// sweepStaleOrders cancels orders stuck in pending longer than the TTL.
// Kitchens that never accept an order should not strand the diner's stream
// forever.
func (js *JobScheduler) sweepStaleOrders(ctx context.Context) error {
	cancelled, err := js.orderService.CancelStale(ctx, js.staleOrderTTL)
	if err != nil {
		log.Printf("Stale order sweep failed: %v", err)
		return err
	}
	if cancelled > 0 {
		log.Printf("Stale order sweep cancelled %d orders older than %s", cancelled, js.staleOrderTTL)
	}
	return nil
}

// purgeAuditLogs trims the audit trail to the retention window.
func (js *JobScheduler) purgeAuditLogs(ctx context.Context) error {
	purged, err := js.auditService.PurgeOlderThan(ctx, js.auditRetention)
	if err != nil {
		log.Printf("Audit log purge failed: %v", err)
		return err
	}
	if purged > 0 {
		log.Printf("Purged %d audit logs older than %s", purged, js.auditRetention)
	}
	return nil
}

// reportBusStats logs delivery counters while streams are active, which is
// cheaper than a metrics pipeline and enough to spot degraded consumers.
func (js *JobScheduler) reportBusStats() {
	stats := js.bus.Stats()
	if stats.Connections == 0 && stats.Published == 0 {
		return
	}
	log.Printf("Event bus: %d connections, %d published, %d delivered, %d dropped",
		stats.Connections, stats.Published, stats.Delivered, stats.Dropped)
}
