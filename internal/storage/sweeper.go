package storage

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ExpirySweeper periodically expires stale PENDING recommendations.
// Expiry is time-driven and lives outside the generation pipeline.
type ExpirySweeper struct {
	store *SQLiteStore
	log   *logrus.Logger
	cron  *cron.Cron
}

// NewExpirySweeper creates a sweeper over the given store.
func NewExpirySweeper(store *SQLiteStore, log *logrus.Logger) *ExpirySweeper {
	if log == nil {
		log = logrus.New()
	}
	return &ExpirySweeper{store: store, log: log, cron: cron.New()}
}

// Start schedules the sweep with a cron expression ("@daily" in production)
// and begins running it.
func (w *ExpirySweeper) Start(spec string) error {
	_, err := w.cron.AddFunc(spec, func() {
		expired, err := w.store.ExpireStale(context.Background())
		if err != nil {
			w.log.WithError(err).Error("recommendation expiry sweep failed")
			return
		}
		if expired > 0 {
			w.log.WithField("expired", expired).Info("expired stale recommendations")
		}
	})
	if err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (w *ExpirySweeper) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}
