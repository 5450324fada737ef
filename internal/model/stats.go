package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ExtensionCount is the number of qualifying files seen with one extension
type ExtensionCount struct {
	Extension string
	Count     int
}

// PlacedFile is a file that was moved into a worker folder
type PlacedFile struct {
	Name       string
	Background Background
}

// WorkerFiles lists the files actually placed in one worker folder
type WorkerFiles struct {
	Name  string
	Files []PlacedFile
}

// Snapshot is an immutable copy of the run statistics. It is safe to hand to
// another goroutine.
type Snapshot struct {
	RunID      string
	Discovered int // qualifying files seen by the scanner
	Total      int // files with a group id, i.e. scheduled for distribution
	Skipped    int // qualifying files without a group id
	Processed  int // files moved and classified
	Light      int
	Other      int
	Failed     int   // files that could not be moved
	Bytes      int64 // total size of scheduled files
	Extensions []ExtensionCount
	Workers    []WorkerFiles
	Elapsed    time.Duration
}

// ExtensionSummary renders "ext (count)" pairs, e.g. ".jpg (3), .png (1)"
func (s Snapshot) ExtensionSummary() string {
	parts := make([]string, 0, len(s.Extensions))
	for _, e := range s.Extensions {
		parts = append(parts, fmt.Sprintf("%s (%d)", e.Extension, e.Count))
	}
	return strings.Join(parts, ", ")
}

// MaxWorkerFiles returns the length of the longest worker file list
func (s Snapshot) MaxWorkerFiles() int {
	max := 0
	for _, w := range s.Workers {
		if len(w.Files) > max {
			max = len(w.Files)
		}
	}
	return max
}

// Stats accumulates statistics for a single run. It is owned by the run's
// goroutine; other goroutines only ever see Snapshot values.
type Stats struct {
	runID      string
	start      time.Time
	discovered int
	total      int
	skipped    int
	light      int
	other      int
	failed     int
	bytes      int64
	extensions map[string]int
	workers    []WorkerFiles
	elapsed    time.Duration
	finished   bool
}

// NewStats creates an accumulator for a run starting now
func NewStats(runID string, start time.Time) *Stats {
	return &Stats{
		runID:      runID,
		start:      start,
		extensions: make(map[string]int),
	}
}

// Start returns the run start time
func (s *Stats) Start() time.Time {
	return s.start
}

// RecordDiscovered counts a qualifying file seen by the scanner
func (s *Stats) RecordDiscovered(f ImageFile) {
	s.discovered++
	s.extensions[f.Ext]++
	if f.HasGroup() {
		s.total++
		s.bytes += f.Size
	} else {
		s.skipped++
	}
}

// SetWorkers initializes an empty file list per worker
func (s *Stats) SetWorkers(workers []*WorkerAssignment) {
	s.workers = make([]WorkerFiles, len(workers))
	for i, w := range workers {
		s.workers[i] = WorkerFiles{Name: w.Name}
	}
}

// RecordPlaced records a file that reached worker idx
func (s *Stats) RecordPlaced(idx int, name string, c Classification) {
	if c.Light() {
		s.light++
	} else {
		s.other++
	}
	if idx >= 0 && idx < len(s.workers) {
		s.workers[idx].Files = append(s.workers[idx].Files, PlacedFile{
			Name:       name,
			Background: c.Background,
		})
	}
}

// RecordFailed counts a file that could not be moved
func (s *Stats) RecordFailed() {
	s.failed++
}

// Processed returns the number of files placed so far
func (s *Stats) Processed() int {
	return s.light + s.other
}

// Finish freezes the elapsed time
func (s *Stats) Finish(now time.Time) {
	s.elapsed = now.Sub(s.start)
	s.finished = true
}

// Elapsed returns the frozen elapsed time after Finish, otherwise the time
// since start
func (s *Stats) Elapsed(now time.Time) time.Duration {
	if s.finished {
		return s.elapsed
	}
	return now.Sub(s.start)
}

// Snapshot deep-copies the current statistics
func (s *Stats) Snapshot(now time.Time) Snapshot {
	return s.snapshot(now, true)
}

// Counts is Snapshot without the per-worker file lists, for progress updates
// that fire once per file
func (s *Stats) Counts(now time.Time) Snapshot {
	return s.snapshot(now, false)
}

func (s *Stats) snapshot(now time.Time, withFiles bool) Snapshot {
	exts := make([]ExtensionCount, 0, len(s.extensions))
	for ext, n := range s.extensions {
		exts = append(exts, ExtensionCount{Extension: ext, Count: n})
	}
	sort.Slice(exts, func(i, j int) bool {
		if exts[i].Count != exts[j].Count {
			return exts[i].Count > exts[j].Count
		}
		return exts[i].Extension < exts[j].Extension
	})

	workers := make([]WorkerFiles, len(s.workers))
	for i, w := range s.workers {
		workers[i] = WorkerFiles{Name: w.Name}
		if withFiles {
			workers[i].Files = make([]PlacedFile, len(w.Files))
			copy(workers[i].Files, w.Files)
		}
	}

	return Snapshot{
		RunID:      s.runID,
		Discovered: s.discovered,
		Total:      s.total,
		Skipped:    s.skipped,
		Processed:  s.Processed(),
		Light:      s.light,
		Other:      s.other,
		Failed:     s.failed,
		Bytes:      s.bytes,
		Extensions: exts,
		Workers:    workers,
		Elapsed:    s.Elapsed(now),
	}
}

// FormatElapsed formats a duration as HH:MM:SS, truncating fractions
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
