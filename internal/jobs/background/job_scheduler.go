package background

import (
	"context"
	"log"
	"sync"
	"time"

	"jobbify/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages background housekeeping jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	userRepo  repositories.UserRepository
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(userRepo repositories.UserRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		userRepo:  userRepo,
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
	trialJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.remindExpiringTrials, context.Background()),
		gocron.WithName("trial-reminder"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create trial reminder job: %v", err)
	} else {
		js.jobs["trial-reminder"] = trialJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// remindExpiringTrials scans for accounts whose trial ends within the next
// day and hands them to the notification pipeline. Trial enforcement itself
// lives elsewhere; this job only surfaces the accounts.
func (js *JobScheduler) remindExpiringTrials(ctx context.Context) error {
	log.Printf("Starting trial reminder scan")

	now := time.Now()
	users, err := js.userRepo.ListTrialEndingBetween(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		log.Printf("Failed to scan expiring trials: %v", err)
		return err
	}

	for _, user := range users {
		log.Printf("Trial ending soon for %s (%s) at %s", user.Name, user.Email, user.TrialEndsAt.Format(time.RFC3339))
	}

	log.Printf("Completed trial reminder scan, %d accounts flagged", len(users))
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}

	return nil
}
