package background

import (
	"context"
	"log"
	"sync"
	"time"

	"foodcourt/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// RetentionConfig controls how long terminal data is kept before the
// background jobs delete it.
type RetentionConfig struct {
	NotificationDays int
	OrderDays        int
}

// DefaultRetention keeps notifications for 30 days and completed or
// cancelled orders for 90.
func DefaultRetention() RetentionConfig {
	return RetentionConfig{NotificationDays: 30, OrderDays: 90}
}

// JobScheduler manages the periodic retention jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	notifRepo repositories.NotificationRepository
	orderRepo repositories.OrderRepository
	retention RetentionConfig
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(notifRepo repositories.NotificationRepository, orderRepo repositories.OrderRepository, retention RetentionConfig) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		notifRepo: notifRepo,
		orderRepo: orderRepo,
		retention: retention,
		jobs:      make(map[string]gocron.Job),
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
	notifJob, err := js.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(js.cleanupNotifications, context.Background()),
		gocron.WithName("notification-retention"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create notification retention job: %v", err)
	} else {
		js.jobs["notification-retention"] = notifJob
	}

	orderJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.cleanupOrders, context.Background()),
		gocron.WithName("order-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create order cleanup job: %v", err)
	} else {
		js.jobs["order-cleanup"] = orderJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// cleanupNotifications deletes ledger rows past the retention window.
// Read rows and unread rows age out alike.
func (js *JobScheduler) cleanupNotifications(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -js.retention.NotificationDays)
	deleted, err := js.notifRepo.DeleteAllOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Notification retention failed: %v", err)
		return err
	}
	if deleted > 0 {
		log.Printf("Notification retention removed %d rows", deleted)
	}
	return nil
}

// cleanupOrders deletes terminal orders past the retention window.
// Pending orders are never touched.
func (js *JobScheduler) cleanupOrders(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -js.retention.OrderDays)
	deleted, err := js.orderRepo.DeleteNonPendingOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Order cleanup failed: %v", err)
		return err
	}
	if deleted > 0 {
		log.Printf("Order cleanup removed %d rows", deleted)
	}
	return nil
}
