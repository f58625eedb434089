package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ScheduleTime is a wall-clock time of day the scheduler fires at.
type ScheduleTime struct {
	Hour   int
	Minute int
}

func (st ScheduleTime) String() string {
	return fmt.Sprintf("%02d:%02d", st.Hour, st.Minute)
}

// ParseScheduleTime parses an HH:MM string.
func ParseScheduleTime(s string) (ScheduleTime, error) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return ScheduleTime{}, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return ScheduleTime{}, fmt.Errorf("invalid hour in %q (must be 0-23)", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return ScheduleTime{}, fmt.Errorf("invalid minute in %q (must be 0-59)", s)
	}

	return ScheduleTime{Hour: hour, Minute: minute}, nil
}

// Scheduler fires the job provider at configured times of day and feeds the
// resulting jobs to a worker pool.
type Scheduler struct {
	pool          *WorkerPool
	scheduleTimes []ScheduleTime
	runOnStartup  bool
	jobProvider   func(context.Context) ([]Job, error)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	lastFire string
}

type SchedulerConfig struct {
	ScheduleTimes []string
	WorkerCount   int
	JobDelay      time.Duration
	QueueSize     int
	RunOnStartup  bool
	JobProvider   func(context.Context) ([]Job, error)
}

func NewScheduler(config SchedulerConfig) (*Scheduler, error) {
	if len(config.ScheduleTimes) == 0 {
		return nil, fmt.Errorf("at least one schedule time is required")
	}

	times := make([]ScheduleTime, 0, len(config.ScheduleTimes))
	for _, raw := range config.ScheduleTimes {
		st, err := ParseScheduleTime(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schedule time %q: %w", raw, err)
		}
		times = append(times, st)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		pool:          NewWorkerPool(config.WorkerCount, config.JobDelay, config.QueueSize),
		scheduleTimes: times,
		runOnStartup:  config.RunOnStartup,
		jobProvider:   config.JobProvider,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Start launches the worker pool and the minute-resolution schedule loop.
func (s *Scheduler) Start() {
	s.pool.Start()

	if s.runOnStartup {
		log.Println("Scheduler: running initial job batch on startup")
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runJobs()
		}()
	}

	s.wg.Add(1)
	go s.loop()
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				log.Printf("Scheduler: triggered at %s", now.Format("15:04"))
				s.runJobs()
			}
		}
	}
}

// shouldRun reports whether now matches a configured time. Each minute
// fires at most once even if the ticker delivers several ticks inside it.
func (s *Scheduler) shouldRun(now time.Time) bool {
	fireKey := now.Format("2006-01-02-15:04")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastFire == fireKey {
		return false
	}

	for _, st := range s.scheduleTimes {
		if now.Hour() == st.Hour && now.Minute() == st.Minute {
			s.lastFire = fireKey
			return true
		}
	}
	return false
}

func (s *Scheduler) runJobs() {
	if s.jobProvider == nil {
		log.Println("Scheduler: no job provider configured")
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	jobs, err := s.jobProvider(ctx)
	if err != nil {
		log.Printf("Scheduler: failed to build jobs: %v", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	s.pool.SubmitBatch(jobs)
}

// Shutdown stops the schedule loop, then drains the worker pool within the
// same timeout.
func (s *Scheduler) Shutdown(timeout time.Duration) {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		log.Println("Scheduler: timeout waiting for schedule loop to stop")
	}

	s.pool.Shutdown(timeout)
	log.Println("Scheduler: shutdown complete")
}
