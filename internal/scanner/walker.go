package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/sgsplit/internal/logging"
	"github.com/lumipallolabs/sgsplit/internal/model"
)

// Walker implements parallel image discovery on top of fastwalk
type Walker struct {
	workers    int
	extensions map[string]bool
	ignore     map[string]bool

	mu    sync.Mutex
	found int
}

// NewWalker creates a walker matching the given extensions (with leading
// dot, any case). Base names listed in ignore are never reported.
func NewWalker(workers int, extensions []string, ignore ...string) *Walker {
	if workers < 1 {
		workers = 8
	}
	w := &Walker{
		workers:    workers,
		extensions: make(map[string]bool, len(extensions)),
		ignore:     make(map[string]bool, len(ignore)),
	}
	for _, ext := range extensions {
		w.extensions[strings.ToLower(ext)] = true
	}
	for _, name := range ignore {
		w.ignore[name] = true
	}
	return w
}

// Supports reports whether a file name has a supported extension
func (w *Walker) Supports(name string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(name))]
}

// Scan walks root and returns every qualifying image
func (w *Walker) Scan(ctx context.Context, root string, progress ProgressFunc) (*Inventory, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.found = 0
	w.mu.Unlock()

	rootInfo := getPlatformRootInfo(absRoot)

	// Collect entries in background without blocking the walkers
	entryChan := make(chan model.ImageFile, 1024)
	var files []model.ImageFile
	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for f := range entryChan {
			files = append(files, f)
		}
	}()

	var seenDirs sync.Map

	// Directories left out of the walk; images under them stay in place
	var skippedMu sync.Mutex
	var skipped []string
	skipDir := func(path string) {
		skippedMu.Lock()
		skipped = append(skipped, path)
		skippedMu.Unlock()
	}

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: w.workers,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			// Unlistable directories are treated as empty
			logging.Scanner.Printf("skipping %s: %v", path, err)
			skipDir(path)
			return nil
		}

		if path == absRoot {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				skipDir(path)
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(path, d, rootInfo, &seenDirs) {
				logging.Scanner.Printf("skipping mount point %s", path)
				skipDir(path)
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || w.ignore[name] || !w.Supports(name) {
			return nil
		}

		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}

		entryChan <- model.NewImageFile(path, size)
		w.report(progress)
		return nil
	})

	close(entryChan)
	collectWg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	// fastwalk yields entries in no particular order
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	sort.Strings(skipped)

	logging.Scanner.Printf("scan of %s found %d images, skipped %d folders", absRoot, len(files), len(skipped))
	inv := newInventory(absRoot, files)
	inv.SkippedDirs = skipped
	return inv, nil
}

// report bumps the found counter and invokes progress under the lock so the
// callback sees every count exactly once, in order
func (w *Walker) report(progress ProgressFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.found++
	if progress != nil {
		progress(w.found)
	}
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
