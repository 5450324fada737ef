package core

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumipallolabs/sgsplit/internal/config"
	"github.com/lumipallolabs/sgsplit/internal/model"
	"github.com/lumipallolabs/sgsplit/internal/scanner"
	"github.com/lumipallolabs/sgsplit/internal/tagging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeImage(t *testing.T, path string, bg color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// sampleTree creates 10 images in 3 groups of 5, 3 and 2 files
func sampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	white := color.NRGBA{255, 255, 255, 255}
	gray := color.NRGBA{90, 90, 90, 255}

	for i, name := range []string{"a", "b", "c", "d", "e"} {
		bg := white
		if i%2 == 1 {
			bg = gray
		}
		writeImage(t, filepath.Join(root, "batch1", "1111111111111_"+name+".png"), bg)
	}
	for _, name := range []string{"a", "b", "c"} {
		writeImage(t, filepath.Join(root, "batch2", "2222222222222_"+name+".png"), gray)
	}
	for _, name := range []string{"a", "b"} {
		writeImage(t, filepath.Join(root, "3333333333333_"+name+".png"), white)
	}
	return root
}

func newTestController(opts ...Option) *Controller {
	opts = append([]Option{WithTagger(tagging.Noop{})}, opts...)
	return NewController(config.Default(), opts...)
}

func collect(events <-chan Event) []Event {
	var out []Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func TestControllerRun(t *testing.T) {
	root := sampleTree(t)
	c := newTestController()

	events, err := c.Start(Request{Root: root, Workers: 2})
	require.NoError(t, err)

	var (
		scanCounts []int
		processed  []int
		completed  *RunCompletedEvent
		started    *RunStartedEvent
	)
	for _, ev := range collect(events) {
		switch e := ev.(type) {
		case RunStartedEvent:
			started = &e
		case ScanProgressEvent:
			scanCounts = append(scanCounts, e.Found)
		case FileProcessedEvent:
			processed = append(processed, e.Processed)
			assert.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, e.Elapsed)
		case RunCompletedEvent:
			completed = &e
		case RunFailedEvent:
			t.Fatalf("run failed: %v", e.Err)
		}
	}

	require.NotNil(t, started)
	assert.NotEmpty(t, started.RunID)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, scanCounts)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, processed)

	require.NotNil(t, completed)
	require.NoError(t, completed.ReportErr)
	assert.Equal(t, filepath.Join(root, "SplitImg_Report.xlsx"), completed.ReportPath)
	assert.FileExists(t, completed.ReportPath)

	snap := completed.Stats
	assert.Equal(t, 10, snap.Processed)
	assert.Equal(t, 5, snap.Light)
	assert.Equal(t, 5, snap.Other)
	assert.Equal(t, started.RunID, snap.RunID)
	require.Len(t, snap.Workers, 2)
	assert.Len(t, snap.Workers[0].Files, 5)
	assert.Len(t, snap.Workers[1].Files, 5)

	// the 5-file group lands on Designer_1, the 3 and 2 file groups on Designer_2
	assert.FileExists(t, filepath.Join(root, "Designer_1", "1111111111111_e.png"))
	assert.FileExists(t, filepath.Join(root, "Designer_2", "2222222222222_a.png"))
	assert.FileExists(t, filepath.Join(root, "Designer_2", "3333333333333_b.png"))

	f, err := excelize.OpenFile(completed.ReportPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Designer Files")
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	assert.Equal(t, PhaseComplete, c.State().Phase)
	assert.False(t, c.State().IsRunning())
}

func TestControllerEmptyWorkers(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "1111111111111_a.png"), color.NRGBA{255, 255, 255, 255})
	writeImage(t, filepath.Join(root, "2222222222222_a.png"), color.NRGBA{255, 255, 255, 255})

	c := newTestController()
	events, err := c.Start(Request{Root: root, Workers: 5})
	require.NoError(t, err)

	var snap model.Snapshot
	Dispatch(events, Callbacks{OnComplete: func(s model.Snapshot) { snap = s }})

	require.Len(t, snap.Workers, 5)
	for i := 2; i < 5; i++ {
		assert.Empty(t, snap.Workers[i].Files)
		assert.DirExists(t, filepath.Join(root, model.WorkerName("Designer_", i)))
	}
}

func TestControllerValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	c := newTestController()
	assert.ErrorIs(t, c.Validate(Request{Root: dir, Workers: 0}), ErrInvalidWorkers)
	assert.ErrorIs(t, c.Validate(Request{Root: dir, Workers: 61}), ErrInvalidWorkers)
	assert.ErrorIs(t, c.Validate(Request{Root: "", Workers: 2}), ErrFolderMissing)
	assert.ErrorIs(t, c.Validate(Request{Root: filepath.Join(dir, "nope"), Workers: 2}), ErrFolderMissing)
	assert.ErrorIs(t, c.Validate(Request{Root: file, Workers: 2}), ErrNotDirectory)
	assert.NoError(t, c.Validate(Request{Root: dir, Workers: 60}))

	events, err := c.Start(Request{Root: dir, Workers: 0})
	assert.Error(t, err)
	assert.Nil(t, events)
	assert.Equal(t, PhaseIdle, c.State().Phase)
}

type panicClassifier struct{}

func (panicClassifier) Classify(string) model.Classification { panic("decoder exploded") }

func TestControllerRecoversPanic(t *testing.T) {
	root := sampleTree(t)
	c := newTestController(WithClassifier(panicClassifier{}))

	events, err := c.Start(Request{Root: root, Workers: 2})
	require.NoError(t, err)

	var failed error
	completed := false
	Dispatch(events, Callbacks{
		OnComplete: func(model.Snapshot) { completed = true },
		OnFailed:   func(err error) { failed = err },
	})

	assert.False(t, completed)
	require.Error(t, failed)
	assert.Contains(t, failed.Error(), "decoder exploded")
	assert.Equal(t, PhaseFailed, c.State().Phase)
}

// blockingScanner waits for release before returning an empty inventory
type blockingScanner struct {
	release chan struct{}
}

func (s blockingScanner) Scan(ctx context.Context, root string, progress scanner.ProgressFunc) (*scanner.Inventory, error) {
	<-s.release
	return &scanner.Inventory{Root: root}, nil
}

func TestControllerOneRunAtATime(t *testing.T) {
	dir := t.TempDir()
	release := make(chan struct{})
	c := newTestController(WithScanner(blockingScanner{release: release}))

	events, err := c.Start(Request{Root: dir, Workers: 1})
	require.NoError(t, err)

	_, err = c.Start(Request{Root: dir, Workers: 1})
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	collect(events)

	events, err = c.Start(Request{Root: dir, Workers: 1})
	require.NoError(t, err)
	collect(events)
}

func TestControllerReportFailureStillCompletes(t *testing.T) {
	root := sampleTree(t)
	// a directory squatting on the report name makes the final rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(root, "SplitImg_Report.xlsx", "x"), 0755))

	c := newTestController()
	events, err := c.Start(Request{Root: root, Workers: 3})
	require.NoError(t, err)

	var completed *RunCompletedEvent
	var errorLogs int
	for _, ev := range collect(events) {
		switch e := ev.(type) {
		case RunCompletedEvent:
			completed = &e
		case LogEvent:
			if e.Level == LevelError {
				errorLogs++
			}
		}
	}

	require.NotNil(t, completed)
	assert.Error(t, completed.ReportErr)
	assert.Empty(t, completed.ReportPath)
	assert.Equal(t, 10, completed.Stats.Processed)
	assert.Equal(t, 1, errorLogs)
}

func TestControllerPlan(t *testing.T) {
	root := sampleTree(t)
	c := newTestController()

	plan, err := c.Plan(context.Background(), Request{Root: root, Workers: 2})
	require.NoError(t, err)
	assert.Len(t, plan.Inventory.Files, 10)
	require.Len(t, plan.Workers, 2)
	assert.Equal(t, 5, plan.Workers[0].Load)
	assert.Equal(t, 5, plan.Workers[1].Load)

	// nothing moved
	assert.NoDirExists(t, filepath.Join(root, "Designer_1"))
	assert.FileExists(t, filepath.Join(root, "batch1", "1111111111111_a.png"))
}

func TestLogEventString(t *testing.T) {
	e := LogEvent{Level: LevelWarn, Message: "Error moving x.png"}
	assert.Contains(t, e.String(), "WARN Error moving x.png")
}

func TestControllerLogsSkippedFolders(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "1111111111111_a.png"), color.NRGBA{255, 255, 255, 255})
	writeImage(t, filepath.Join(root, ".previews", "2222222222222_a.png"), color.NRGBA{255, 255, 255, 255})

	c := newTestController()
	events, err := c.Start(Request{Root: root, Workers: 1})
	require.NoError(t, err)

	var warnings []string
	Dispatch(events, Callbacks{OnLog: func(e LogEvent) {
		if e.Level == LevelWarn {
			warnings = append(warnings, e.Message)
		}
	}})

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "1 folders were skipped")
	assert.FileExists(t, filepath.Join(root, ".previews", "2222222222222_a.png"))
}
