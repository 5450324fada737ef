package core

import "github.com/lumipallolabs/sgsplit/internal/model"

// Callbacks mirror the three progress hooks of a run plus the report
// outcome, logging and failure. Nil callbacks are skipped.
type Callbacks struct {
	OnScanProgress func(found int)
	// OnFileProcessed receives counts only: the snapshot's Workers carry
	// names but no file lists. OnComplete gets the full snapshot.
	OnFileProcessed func(processed int, elapsed string, stats model.Snapshot)
	OnComplete      func(stats model.Snapshot)
	OnReport        func(path string, err error)
	OnLog           func(e LogEvent)
	OnFailed        func(err error)
}

// Dispatch drains events and invokes the matching callbacks, all from the
// calling goroutine. It returns when the channel is closed.
func Dispatch(events <-chan Event, cb Callbacks) {
	for ev := range events {
		switch e := ev.(type) {
		case ScanProgressEvent:
			if cb.OnScanProgress != nil {
				cb.OnScanProgress(e.Found)
			}
		case FileProcessedEvent:
			if cb.OnFileProcessed != nil {
				cb.OnFileProcessed(e.Processed, e.Elapsed, e.Stats)
			}
		case RunCompletedEvent:
			if cb.OnReport != nil {
				cb.OnReport(e.ReportPath, e.ReportErr)
			}
			if cb.OnComplete != nil {
				cb.OnComplete(e.Stats)
			}
		case LogEvent:
			if cb.OnLog != nil {
				cb.OnLog(e)
			}
		case RunFailedEvent:
			if cb.OnFailed != nil {
				cb.OnFailed(e.Err)
			}
		}
	}
}
