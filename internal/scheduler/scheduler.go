// Package scheduler runs the recurring data refresh and prediction jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/hoopsight/internal/service"
)

// Scheduler manages the recurring pipeline jobs
type Scheduler struct {
	cron            *cron.Cron
	ingestionSvc    *service.IngestionService
	predictionSvc   *service.PredictionService
	valueSvc        *service.ValueService
	ratingSvc       *service.RatingService
	seasonYear      int
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(
	ingestionSvc *service.IngestionService,
	predictionSvc *service.PredictionService,
	valueSvc *service.ValueService,
	ratingSvc *service.RatingService,
	seasonYear int,
	logger *logrus.Logger,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		ingestionSvc:    ingestionSvc,
		predictionSvc:   predictionSvc,
		valueSvc:        valueSvc,
		ratingSvc:       ratingSvc,
		seasonYear:      seasonYear,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRefresh schedules the data refresh job: games and results for
// the trailing week, today's odds, and roster averages.
func (s *Scheduler) ScheduleRefresh(cronExpression string) error {
	return s.addJob(cronExpression, "refresh", func(ctx context.Context) {
		now := time.Now().UTC()
		start := now.Add(-7 * 24 * time.Hour)

		if _, err := s.ingestionSvc.RefreshGames(ctx, start, now); err != nil {
			s.logger.WithError(err).Error("Scheduled game refresh failed")
			return
		}
		if _, err := s.ingestionSvc.RefreshOdds(ctx, now); err != nil {
			s.logger.WithError(err).Error("Scheduled odds refresh failed")
		}
		if _, err := s.ingestionSvc.RefreshPropLines(ctx, now); err != nil {
			s.logger.WithError(err).Error("Scheduled prop lines refresh failed")
		}
		if _, err := s.ingestionSvc.RefreshPlayerAverages(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled player averages refresh failed")
		}
	})
}

// SchedulePredict schedules the daily slate prediction and value scan.
func (s *Scheduler) SchedulePredict(cronExpression string) error {
	return s.addJob(cronExpression, "predict", func(ctx context.Context) {
		results, err := s.predictionSvc.PredictSlate(ctx, time.Now().UTC())
		if err != nil {
			s.logger.WithError(err).Error("Scheduled slate prediction failed")
			return
		}
		if _, err := s.valueSvc.AnalyzeSlate(ctx, results); err != nil {
			s.logger.WithError(err).Error("Scheduled value analysis failed")
		}
	})
}

// ScheduleRatingsRebuild schedules the full season ratings replay.
func (s *Scheduler) ScheduleRatingsRebuild(cronExpression string) error {
	return s.addJob(cronExpression, "ratings_rebuild", func(ctx context.Context) {
		if err := s.ratingSvc.RebuildSeason(ctx, s.seasonYear); err != nil {
			s.logger.WithError(err).Error("Scheduled ratings rebuild failed")
			return
		}
		if err := s.ratingSvc.RefreshTeamProfiles(ctx, s.seasonYear); err != nil {
			s.logger.WithError(err).Error("Scheduled team profile refresh failed")
		}
	})
}

func (s *Scheduler) addJob(cronExpression, name string, job func(context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		s.logger.WithField("job", name).Info("Starting scheduled job")
		job(ctx)
		s.logger.WithField("job", name).Info("Scheduled job finished")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"job":  name,
		"cron": cronExpression,
	}).Info("Scheduled job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out waiting for running jobs")
	}
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}
