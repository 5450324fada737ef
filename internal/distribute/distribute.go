// Package distribute moves grouped images into their worker folders,
// classifies each moved file and tags it.
package distribute

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/sgsplit/internal/logging"
	"github.com/lumipallolabs/sgsplit/internal/model"
	"github.com/lumipallolabs/sgsplit/internal/tagging"
)

// ErrDestinationExists is returned when a different file already occupies
// the destination path
var ErrDestinationExists = errors.New("destination already exists")

// Classifier decides the background of a file
type Classifier interface {
	Classify(path string) model.Classification
}

// Mover relocates a single file
type Mover interface {
	Move(src, dst string) error
}

// RenameMover moves files with os.Rename and refuses to overwrite
type RenameMover struct{}

// Move renames src to dst unless dst is already taken
func (RenameMover) Move(src, dst string) error {
	if src == dst {
		return nil
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

// Hooks receive per-file notifications. Nil hooks are skipped.
type Hooks struct {
	// FileDone fires after every attempted file, moved or not
	FileDone func()
	Info     func(msg string)
	Warn     func(msg string)
}

func (h Hooks) info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logging.Debug.Print(msg)
	if h.Info != nil {
		h.Info(msg)
	}
}

func (h Hooks) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logging.Debug.Print(msg)
	if h.Warn != nil {
		h.Warn(msg)
	}
}

func (h Hooks) fileDone() {
	if h.FileDone != nil {
		h.FileDone()
	}
}

// Distributor performs the moves for a balanced assignment
type Distributor struct {
	classifier Classifier
	tagger     tagging.Tagger
	mover      Mover
}

// New creates a distributor. A nil tagger disables tagging and a nil mover
// uses RenameMover.
func New(classifier Classifier, tagger tagging.Tagger, mover Mover) *Distributor {
	if tagger == nil {
		tagger = tagging.Noop{}
	}
	if mover == nil {
		mover = RenameMover{}
	}
	return &Distributor{
		classifier: classifier,
		tagger:     tagger,
		mover:      mover,
	}
}

// Run creates every worker folder, then processes workers in index order,
// groups in assignment order and files in discovery order. A failure on one
// file never stops the run.
func (d *Distributor) Run(workers []*model.WorkerAssignment, stats *model.Stats, hooks Hooks) {
	stats.SetWorkers(workers)

	for _, w := range workers {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			hooks.warn("Cannot create folder %s: %v", w.Dir, err)
		}
	}

	tagFailed := false
	for _, w := range workers {
		if w.Load > 0 {
			hooks.info("%s: %d files in %d groups", w.Name, w.Load, w.GroupCount())
		}
		for _, g := range w.Groups {
			for _, f := range g.Files {
				d.processFile(w, f, stats, hooks, &tagFailed)
				hooks.fileDone()
			}
		}
	}
}

func (d *Distributor) processFile(w *model.WorkerAssignment, f model.ImageFile, stats *model.Stats, hooks Hooks, tagFailed *bool) {
	dest := filepath.Join(w.Dir, f.Name)

	if err := d.mover.Move(f.Path, dest); err != nil {
		stats.RecordFailed()
		hooks.warn("Error moving %s: %v", f.Name, err)
		return
	}

	result := d.classifier.Classify(dest)
	if result.Failed() {
		hooks.warn("Error checking background of %s: %v", f.Name, result.Err)
	}
	stats.RecordPlaced(w.Index, f.Name, result)

	if err := d.tagger.Tag(dest, result.Background); err != nil {
		// Report the first failure only; the rest go to the debug log
		if !*tagFailed {
			*tagFailed = true
			hooks.warn("Tagging unavailable (%s): %v", d.tagger.Name(), err)
		} else {
			logging.Debug.Printf("tag %s: %v", dest, err)
		}
	}
}
