// Package upload runs background maintenance over stored leaf uploads.
package upload

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Pruner is the part of the storage layer the janitor needs.
type Pruner interface {
	Prune(maxAge time.Duration) (int, error)
}

// Janitor periodically deletes uploads older than a retention window.
type Janitor struct {
	store    Pruner
	maxAge   time.Duration
	interval time.Duration
	log      logrus.FieldLogger
}

// NewJanitor creates a janitor. A zero maxAge disables pruning.
func NewJanitor(store Pruner, maxAge, interval time.Duration, log logrus.FieldLogger) *Janitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Janitor{
		store:    store,
		maxAge:   maxAge,
		interval: interval,
		log:      log.WithField("service", "retention"),
	}
}

// Enabled reports whether a retention window is configured.
func (j *Janitor) Enabled() bool {
	return j.maxAge > 0
}

// Run prunes once immediately and then on every tick until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	if !j.Enabled() {
		j.log.Info("disabled, uploads are kept indefinitely")
		return
	}

	j.log.WithFields(logrus.Fields{
		"interval": j.interval,
		"max_age":  j.maxAge,
	}).Info("starting")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.RunOnce()
	for {
		select {
		case <-ctx.Done():
			j.log.Info("shutting down")
			return
		case <-ticker.C:
			j.RunOnce()
		}
	}
}

// RunOnce performs a single pruning pass and returns the number of
// removed uploads.
func (j *Janitor) RunOnce() int {
	if !j.Enabled() {
		return 0
	}

	start := time.Now()
	removed, err := j.store.Prune(j.maxAge)
	entry := j.log.WithFields(logrus.Fields{
		"removed":     removed,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("cleanup finished with errors")
		return removed
	}
	entry.Debug("cleanup complete")
	return removed
}
