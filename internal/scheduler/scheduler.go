// Package scheduler drives the worker's recurring jobs: rating sweeps,
// prediction builds, grading batches, and the live polling loop.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Christbey/picksports-sub004/internal/config"
	"github.com/Christbey/picksports-sub004/internal/logger"
	"github.com/Christbey/picksports-sub004/internal/service"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

const batchJobTimeout = 30 * time.Minute

// Scheduler runs batch jobs on cron schedules and the live poller on a
// fixed interval. All schedules are evaluated in UTC.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	ratings  *service.RatingService
	preds    *service.PredictionService
	grading  *service.GradingService
	liveSvc  *service.LiveService
	limiter  *rate.Limiter
	logger   *logrus.Logger
	profiles []sports.Profile

	mu        sync.Mutex
	isRunning bool
	stopLive  context.CancelFunc
	liveDone  chan struct{}
}

// New creates a scheduler over every configured sport profile
func New(cfg *config.Config, ratings *service.RatingService, preds *service.PredictionService, grading *service.GradingService, liveSvc *service.LiveService, log *logrus.Logger) (*Scheduler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	profiles := cfg.AllProfiles()
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no sport profiles configured")
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		cfg:      cfg,
		ratings:  ratings,
		preds:    preds,
		grading:  grading,
		liveSvc:  liveSvc,
		limiter:  rate.NewLimiter(rate.Limit(cfg.Live.PollRateLimit), 1),
		logger:   log,
		profiles: profiles,
	}, nil
}

// Start registers all jobs and begins execution. The live poller runs on its
// own goroutine so a slow batch job never delays it.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if err := s.registerJobs(); err != nil {
		return err
	}

	liveCtx, cancel := context.WithCancel(context.Background())
	s.stopLive = cancel
	s.liveDone = make(chan struct{})
	go s.runLiveLoop(liveCtx)

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.cron.Entries())).Info("Scheduler started")
	return nil
}

// Stop halts the cron runner and the live loop, waiting for in-flight jobs
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	if s.stopLive != nil {
		s.stopLive()
		<-s.liveDone
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) registerJobs() error {
	jobs := []struct {
		name string
		expr string
		run  func(ctx context.Context, p sports.Profile) error
	}{
		{"rating_sweep", s.cfg.Schedule.RatingSweep, s.runRatingSweep},
		{"prediction_build", s.cfg.Schedule.PredictionBuild, s.runPredictionBuild},
		{"grade_predictions", s.cfg.Schedule.GradePredictions, s.runGradePredictions},
		{"grade_props", s.cfg.Schedule.GradeProps, s.runGradeProps},
	}

	for _, job := range jobs {
		job := job
		_, err := s.cron.AddFunc(job.expr, func() { s.runForAllSports(job.name, job.run) })
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
	}
	return nil
}

// runForAllSports executes one batch job across every profile. Per-sport
// failures are logged and do not stop the remaining sports.
func (s *Scheduler) runForAllSports(name string, run func(ctx context.Context, p sports.Profile) error) {
	ctx, cancel := context.WithTimeout(context.Background(), batchJobTimeout)
	defer cancel()

	log := logger.BatchLogger(s.logger, name)
	log.Info("Batch job starting")

	for _, profile := range s.profiles {
		if err := run(ctx, profile); err != nil {
			log.WithFields(logrus.Fields{"sport": profile.Sport, "error": err}).
				Error("Batch job failed for sport, continuing")
		}
	}
	log.Info("Batch job finished")
}

func (s *Scheduler) runRatingSweep(ctx context.Context, p sports.Profile) error {
	season := p.CurrentSeason(time.Now())
	_, err := s.ratings.RunSweep(ctx, p, season, s.cfg.Rating.SweepLookbackDays)
	return err
}

func (s *Scheduler) runPredictionBuild(ctx context.Context, p sports.Profile) error {
	_, err := s.preds.BuildPredictions(ctx, p)
	return err
}

func (s *Scheduler) runGradePredictions(ctx context.Context, p sports.Profile) error {
	_, err := s.grading.GradePredictions(ctx, p)
	return err
}

func (s *Scheduler) runGradeProps(ctx context.Context, p sports.Profile) error {
	if !s.cfg.Grading.PropBatchEnabled {
		return nil
	}
	season := p.CurrentSeason(time.Now())
	_, err := s.grading.GradeProps(ctx, p, &season)
	return err
}

// runLiveLoop polls live games on a fixed interval. The limiter spaces the
// per-sport polls so a seven-sport slate does not burst the database.
func (s *Scheduler) runLiveLoop(ctx context.Context) {
	defer close(s.liveDone)

	interval := time.Duration(s.cfg.Live.PollIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.WithField("interval", interval.String()).Info("Live polling loop starting")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Live polling loop stopped")
			return
		case <-ticker.C:
			s.pollAllSports(ctx)
		}
	}
}

func (s *Scheduler) pollAllSports(ctx context.Context) {
	for _, profile := range s.profiles {
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		if _, err := s.liveSvc.PollOnce(ctx, profile); err != nil {
			s.logger.WithFields(logrus.Fields{"sport": profile.Sport, "error": err}).
				Error("Live poll failed for sport, continuing")
		}
	}
}
