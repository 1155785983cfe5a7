package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
	"github.com/sunsetfest/booking-backend/internal/repository"
)

// HoldReaper periodically deletes holds that expired more than a grace period
// ago. Expired holds already stop counting against availability the moment
// they lapse; the reaper only keeps the hold tables from growing without
// bound.
type HoldReaper struct {
	holdRepo  repository.HoldRepository
	interval  time.Duration
	grace     time.Duration
	log       *logrus.Logger
	scheduler gocron.Scheduler
}

func NewHoldReaper(holdRepo repository.HoldRepository, interval, grace time.Duration, log *logrus.Logger) (*HoldReaper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &HoldReaper{
		holdRepo:  holdRepo,
		interval:  interval,
		grace:     grace,
		log:       log,
		scheduler: scheduler,
	}, nil
}

func (w *HoldReaper) Start() error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.sweep),
	)
	if err != nil {
		return err
	}
	w.scheduler.Start()
	w.log.WithField("interval", w.interval).Info("hold reaper started")
	return nil
}

func (w *HoldReaper) Stop() error {
	return w.scheduler.Shutdown()
}

func (w *HoldReaper) sweep() {
	cutoff := time.Now().Add(-w.grace)
	removed, err := w.holdRepo.DeleteExpired(context.Background(), cutoff)
	if err != nil {
		w.log.WithError(err).Error("hold sweep failed")
		return
	}
	if removed > 0 {
		w.log.WithField("removed", removed).Info("swept expired holds")
	}
}
