package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lumipallolabs/sgsplit/internal/balance"
	"github.com/lumipallolabs/sgsplit/internal/classify"
	"github.com/lumipallolabs/sgsplit/internal/config"
	"github.com/lumipallolabs/sgsplit/internal/distribute"
	"github.com/lumipallolabs/sgsplit/internal/logging"
	"github.com/lumipallolabs/sgsplit/internal/model"
	"github.com/lumipallolabs/sgsplit/internal/report"
	"github.com/lumipallolabs/sgsplit/internal/scanner"
	"github.com/lumipallolabs/sgsplit/internal/tagging"
)

// scanWorkers is the fastwalk parallelism used for discovery
const scanWorkers = 8

var (
	ErrInvalidWorkers = errors.New("invalid number of designers")
	ErrFolderMissing  = errors.New("source folder does not exist")
	ErrNotDirectory   = errors.New("source path is not a folder")
	ErrRunInProgress  = errors.New("a run is already in progress")
)

// Request describes one split run
type Request struct {
	Root    string
	Workers int
}

// Plan is the result of a dry run: what would go where
type Plan struct {
	Inventory *scanner.Inventory
	Workers   []*model.WorkerAssignment
}

// Option customizes a Controller
type Option func(*Controller)

// WithScanner replaces the filesystem scanner
func WithScanner(s scanner.Scanner) Option {
	return func(c *Controller) { c.scanner = s }
}

// WithClassifier replaces the corner classifier
func WithClassifier(cl distribute.Classifier) Option {
	return func(c *Controller) { c.classifier = cl }
}

// WithTagger replaces the platform tagger
func WithTagger(t tagging.Tagger) Option {
	return func(c *Controller) { c.tagger = t }
}

// WithMover replaces the file mover
func WithMover(m distribute.Mover) Option {
	return func(c *Controller) { c.mover = m }
}

// Controller runs the split pipeline in the background and reports through
// events. It has no UI dependencies.
type Controller struct {
	mu  sync.RWMutex
	run RunState

	cfg        *config.Config
	scanner    scanner.Scanner
	classifier distribute.Classifier
	tagger     tagging.Tagger
	mover      distribute.Mover
	reporter   *report.Writer
}

// NewController creates a controller with components built from cfg
func NewController(cfg *config.Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:        cfg,
		scanner:    scanner.NewWalker(scanWorkers, cfg.Split.Extensions, cfg.Split.ReportName),
		classifier: classify.New(cfg.Classify.SampleSize),
		tagger:     tagging.New(cfg.Tagging.Enabled, cfg.Labels()),
		reporter:   report.New(cfg.Fills()),
	}
	for _, opt := range opts {
		opt(c)
	}
	logging.Debug.Printf("[Controller] tagger: %s", c.tagger.Name())
	return c
}

// State returns a read-only snapshot of the current run state
func (c *Controller) State() RunState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run
}

// Validate checks a request without touching the filesystem beyond a stat
func (c *Controller) Validate(req Request) error {
	lo, hi := c.cfg.Split.MinWorkers, c.cfg.Split.MaxWorkers
	if req.Workers < lo || req.Workers > hi {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidWorkers, req.Workers, lo, hi)
	}
	if req.Root == "" {
		return ErrFolderMissing
	}
	info, err := os.Stat(req.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFolderMissing, req.Root)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, req.Root)
	}
	return nil
}

// Start validates req and launches the pipeline. Invalid requests are
// rejected here and no run is started. The returned channel delivers the
// run's events and is closed when the run ends. It must be drained.
func (c *Controller) Start(req Request) (<-chan Event, error) {
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(req.Root)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.run.IsRunning() {
		c.mu.Unlock()
		return nil, ErrRunInProgress
	}
	c.run = RunState{
		Phase:     PhaseScanning,
		RunID:     uuid.NewString(),
		Root:      root,
		Workers:   req.Workers,
		StartTime: time.Now(),
	}
	run := c.run
	c.mu.Unlock()

	eventCh := make(chan Event, 256)

	go c.runSplit(run, eventCh)

	return eventCh, nil
}

// Plan scans and balances without moving anything
func (c *Controller) Plan(ctx context.Context, req Request) (*Plan, error) {
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	inv, err := c.scanner.Scan(ctx, req.Root, nil)
	if err != nil {
		return nil, err
	}
	workers := balance.Plan(inv.Groups, req.Root, c.cfg.Split.FolderPrefix, req.Workers)
	return &Plan{Inventory: inv, Workers: workers}, nil
}

// ReportPath returns where the report for root is written
func (c *Controller) ReportPath(root string) string {
	return filepath.Join(root, c.cfg.Split.ReportName)
}

// runSplit executes the pipeline in a goroutine
func (c *Controller) runSplit(run RunState, eventCh chan Event) {
	defer close(eventCh)
	defer func() {
		if r := recover(); r != nil {
			c.fail(eventCh, fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	logf := func(level LogLevel, format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		logging.Debug.Printf("[Controller] %s %s", level, msg)
		eventCh <- LogEvent{Level: level, Message: msg, Time: time.Now()}
	}

	stats := model.NewStats(run.RunID, run.StartTime)

	eventCh <- RunStartedEvent{RunID: run.RunID, Root: run.Root, Workers: run.Workers}
	logf(LevelInfo, "Run %s started: %s, %d designers", run.RunID, run.Root, run.Workers)

	eventCh <- PhaseChangedEvent{Phase: PhaseScanning}

	inv, err := c.scanner.Scan(context.Background(), run.Root, func(found int) {
		c.mu.Lock()
		c.run.Found = found
		c.mu.Unlock()
		eventCh <- ScanProgressEvent{Found: found}
	})
	if err != nil {
		c.fail(eventCh, fmt.Errorf("scan %s: %w", run.Root, err))
		return
	}

	for _, f := range inv.Files {
		stats.RecordDiscovered(f)
	}
	counts := stats.Counts(time.Now())
	logf(LevelInfo, "Found %d images in %d groups", counts.Total, len(inv.Groups))
	if counts.Skipped > 0 {
		logf(LevelWarn, "%d images have no group id and stay in place", counts.Skipped)
	}
	if n := len(inv.SkippedDirs); n > 0 {
		logf(LevelWarn, "%d folders were skipped (hidden, unreadable or on another drive); images inside stay in place", n)
		for _, dir := range inv.SkippedDirs {
			logging.Debug.Printf("[Controller] skipped folder %s", dir)
		}
	}

	workers := balance.Plan(inv.Groups, run.Root, c.cfg.Split.FolderPrefix, run.Workers)
	logging.Debug.Printf("[Controller] loads %v, skew %d", balance.Loads(workers), balance.Skew(workers))

	c.setPhase(eventCh, PhaseDistributing, func(s *RunState) { s.Total = counts.Total })

	dist := distribute.New(c.classifier, c.tagger, c.mover)
	dist.Run(workers, stats, distribute.Hooks{
		FileDone: func() {
			now := time.Now()
			snap := stats.Counts(now)
			c.mu.Lock()
			c.run.Processed = snap.Processed + snap.Failed
			c.mu.Unlock()
			eventCh <- FileProcessedEvent{
				Processed: snap.Processed,
				Elapsed:   model.FormatElapsed(stats.Elapsed(now)),
				Stats:     snap,
			}
		},
		Info: func(msg string) { logf(LevelInfo, "%s", msg) },
		Warn: func(msg string) { logf(LevelWarn, "%s", msg) },
	})

	stats.Finish(time.Now())
	snap := stats.Snapshot(time.Now())
	logf(LevelInfo, "Processed %d images (%d white, %d other, %d failed) in %s",
		snap.Processed, snap.Light, snap.Other, snap.Failed, model.FormatElapsed(snap.Elapsed))

	c.setPhase(eventCh, PhaseReporting, nil)

	reportPath := c.ReportPath(run.Root)
	reportErr := c.reporter.Write(reportPath, snap)
	if reportErr != nil {
		logf(LevelError, "Error creating report: %v", reportErr)
		reportPath = ""
	} else {
		logf(LevelInfo, "Report created: %s", reportPath)
	}

	c.setPhase(eventCh, PhaseComplete, nil)
	eventCh <- RunCompletedEvent{Stats: snap, ReportPath: reportPath, ReportErr: reportErr}

	logging.Debug.Printf("[Controller] Run %s complete", run.RunID)
}

func (c *Controller) setPhase(eventCh chan Event, phase Phase, update func(*RunState)) {
	c.mu.Lock()
	c.run.Phase = phase
	if update != nil {
		update(&c.run)
	}
	c.mu.Unlock()
	eventCh <- PhaseChangedEvent{Phase: phase}
}

func (c *Controller) fail(eventCh chan Event, err error) {
	logging.Debug.Printf("[Controller] run failed: %v", err)
	c.mu.Lock()
	c.run.Phase = PhaseFailed
	c.mu.Unlock()
	eventCh <- LogEvent{Level: LevelError, Message: err.Error(), Time: time.Now()}
	eventCh <- PhaseChangedEvent{Phase: PhaseFailed}
	eventCh <- RunFailedEvent{Err: err}
}
