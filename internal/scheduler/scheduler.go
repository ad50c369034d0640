package scheduler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/example/examdesk/internal/codec"
	"github.com/example/examdesk/pkg/models"
)

// DefaultBackupInterval is used when Start gets a non-positive interval
const DefaultBackupInterval = time.Hour

// backupTimeFormat names backup files so they sort chronologically
const backupTimeFormat = "20060102T150405Z"

// Snapshotter provides the document to back up
type Snapshotter interface {
	Snapshot() *models.AppData
}

// Scheduler manages the periodic backup job
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    Snapshotter
	codec     codec.Codec
	dir       string
	log       logrus.FieldLogger
	now       func() time.Time
}

// New creates a new scheduler instance writing backups of source into dir
func New(source Snapshotter, c codec.Codec, dir string, log logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		codec:     c,
		dir:       dir,
		log:       log,
		now:       time.Now,
	}
}

// Start schedules the backup job every interval, running it once right away
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultBackupInterval
	}
	if _, err := s.scheduler.Every(interval).Do(s.backupJob); err != nil {
		return fmt.Errorf("failed to schedule backup: %v", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.log.WithField("interval", interval.String()).Info("Backup scheduler started")
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) backupJob() {
	path, err := s.RunBackup()
	if err != nil {
		s.log.Errorf("Backup failed: %v", err)
		return
	}
	s.log.WithField("path", path).Info("Backup written")
}

// RunBackup writes one snapshot now and returns its path
func (s *Scheduler) RunBackup() (string, error) {
	doc := s.source.Snapshot()
	if doc == nil {
		return "", fmt.Errorf("no document to back up")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %v", err)
	}

	name := "appdata-" + s.now().UTC().Format(backupTimeFormat) + s.codec.Extension()
	path := filepath.Join(s.dir, name)

	// Encode into a temp file, renamed on success
	tmp, err := os.CreateTemp(s.dir, ".appdata-*")
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if err := s.codec.Encode(doc, tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close backup file: %v", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to finalize backup: %v", err)
	}
	return path, nil
}
