package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Janitor periodically removes stored uploads and results past their retention
type Janitor struct {
	dirs      []string
	retention time.Duration
	interval  time.Duration
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewJanitor creates a janitor sweeping dirs every interval
func NewJanitor(dirs []string, retention, interval time.Duration, log logrus.FieldLogger) *Janitor {
	return &Janitor{
		dirs:      dirs,
		retention: retention,
		interval:  interval,
		log:       log,
		now:       time.Now,
	}
}

// Run sweeps until ctx is cancelled
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := j.Sweep(); removed > 0 {
				j.log.WithField("removed", removed).Info("Expired files removed")
			}
		}
	}
}

// Sweep removes regular files older than the retention and returns how many
// were deleted. Files that cannot be removed are skipped.
func (j *Janitor) Sweep() int {
	cutoff := j.now().Add(-j.retention)
	removed := 0

	for _, dir := range j.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			j.log.WithError(err).WithField("dir", dir).Warn("Cleanup failed")
			continue
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				j.log.WithError(err).WithField("file", path).Debug("File still in use")
				continue
			}
			removed++
		}
	}

	return removed
}
