// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/store"
)

// File names written into the export directory.
const (
	CSVFile  = "dataset.csv"
	XLSXFile = "dataset.xlsx"
)

// runTimeout bounds a single scheduled export.
const runTimeout = 2 * time.Minute

// Source lists every assessment with its raw results.
type Source interface {
	ListForExport(ctx context.Context) ([]store.Record, error)
}

// Exporter builds the dataset from a Source.
type Exporter struct {
	src     Source
	profile *risk.Profile
}

// NewExporter scores records with profile, or the default profile when nil.
func NewExporter(src Source, profile *risk.Profile) *Exporter {
	if profile == nil {
		profile = risk.DefaultProfile()
	}
	return &Exporter{src: src, profile: profile}
}

// Rows loads and scores the current dataset.
func (e *Exporter) Rows(ctx context.Context) ([]Row, error) {
	records, err := e.src.ListForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return BuildRows(records, e.profile), nil
}

// WriteDir writes dataset.csv and dataset.xlsx into dir. Each file is
// replaced atomically so readers never see a partial dataset.
func (e *Exporter) WriteDir(ctx context.Context, dir string) (int, error) {
	rows, err := e.Rows(ctx)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}

	writers := []struct {
		name  string
		write func(io.Writer, []Row) error
	}{
		{CSVFile, WriteCSV},
		{XLSXFile, WriteXLSX},
	}
	for _, w := range writers {
		var buf bytes.Buffer
		if err := w.write(&buf, rows); err != nil {
			return 0, err
		}
		if err := writeFileAtomic(filepath.Join(dir, w.name), buf.Bytes()); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Scheduler periodically writes the dataset into a directory.
type Scheduler struct {
	scheduler *gocron.Scheduler
	exporter  *Exporter
	dir       string
	every     time.Duration
}

// NewScheduler creates a scheduler that exports every interval.
func NewScheduler(exporter *Exporter, dir string, every time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		exporter:  exporter,
		dir:       dir,
		every:     every,
	}
}

// Start schedules the export job and runs it without blocking. The first
// export happens immediately.
func (s *Scheduler) Start() error {
	if s.every <= 0 {
		return fmt.Errorf("export interval must be positive, got %s", s.every)
	}
	if _, err := s.scheduler.Every(s.every).Do(s.runOnce); err != nil {
		return fmt.Errorf("schedule export: %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates scheduled exports.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.exporter.WriteDir(ctx, s.dir)
	if err != nil {
		slog.Error("dataset export failed", "dir", s.dir, "error", err)
		return
	}
	slog.Info("dataset exported",
		"dir", s.dir,
		"rows", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
