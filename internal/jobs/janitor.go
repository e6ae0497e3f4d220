// Package jobs holds scheduled maintenance work.
package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Janitor periodically removes orphaned run directories from the work dir.
// A worker that crashes mid-run never reaches its own deferred cleanup, so
// its temp artifacts would otherwise accumulate forever.
type Janitor struct {
	dir      string
	maxAge   time.Duration
	schedule string
	cron     *cron.Cron
	log      *zap.Logger
}

func NewJanitor(dir string, maxAge time.Duration, schedule string, logger *zap.Logger) *Janitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Janitor{
		dir:      dir,
		maxAge:   maxAge,
		schedule: schedule,
		cron:     cron.New(),
		log:      logger,
	}
}

func (j *Janitor) Start() error {
	if j.dir == "" || j.schedule == "" {
		j.log.Info("temp janitor disabled")
		return nil
	}
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.Sweep(); err != nil {
			j.log.Warn("janitor sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info("temp janitor started", zap.String("schedule", j.schedule))
	return nil
}

func (j *Janitor) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// Sweep removes run directories older than maxAge. Only directories with the
// pipeline's "run-" prefix are touched.
func (j *Janitor) Sweep() error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "run-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			j.log.Warn("failed to remove orphaned run dir", zap.String("dir", path), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		j.log.Info("removed orphaned run dirs", zap.Int("count", removed))
	}
	return nil
}
