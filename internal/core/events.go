package core

import (
	"fmt"
	"time"

	"github.com/lumipallolabs/sgsplit/internal/model"
)

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// RunStartedEvent is emitted once a run has been accepted
type RunStartedEvent struct {
	RunID   string
	Root    string
	Workers int
}

func (RunStartedEvent) isEvent() {}

// PhaseChangedEvent is emitted when the pipeline moves to the next phase
type PhaseChangedEvent struct {
	Phase Phase
}

func (PhaseChangedEvent) isEvent() {}

// ScanProgressEvent is emitted once per qualifying file found
type ScanProgressEvent struct {
	Found int
}

func (ScanProgressEvent) isEvent() {}

// FileProcessedEvent is emitted after every attempted file. Stats carries
// the counters only; per-worker file lists arrive with RunCompletedEvent.
type FileProcessedEvent struct {
	Processed int
	Elapsed   string // HH:MM:SS
	Stats     model.Snapshot
}

func (FileProcessedEvent) isEvent() {}

// LogLevel is the severity of an operator log line
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// LogEvent is an operator-visible log line
type LogEvent struct {
	Level   LogLevel
	Message string
	Time    time.Time
}

func (LogEvent) isEvent() {}

// String renders "[15:04:05] WARN message"
func (e LogEvent) String() string {
	return fmt.Sprintf("[%s] %s %s", e.Time.Format("15:04:05"), e.Level, e.Message)
}

// RunCompletedEvent is emitted when the pipeline finished. A report failure
// does not fail the run; ReportErr is set and ReportPath is empty.
type RunCompletedEvent struct {
	Stats      model.Snapshot
	ReportPath string
	ReportErr  error
}

func (RunCompletedEvent) isEvent() {}

// RunFailedEvent is emitted instead of RunCompletedEvent when the pipeline
// aborted
type RunFailedEvent struct {
	Err error
}

func (RunFailedEvent) isEvent() {}
