package core

import "time"

// Phase represents the current pipeline phase
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseDistributing
	PhaseReporting
	PhaseComplete
	PhaseFailed
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning files"
	case PhaseDistributing:
		return "Moving and classifying"
	case PhaseReporting:
		return "Writing report"
	case PhaseComplete:
		return "Complete"
	case PhaseFailed:
		return "Failed"
	default:
		return ""
	}
}

// RunState holds the current run state
type RunState struct {
	Phase     Phase
	RunID     string
	Root      string
	Workers   int
	StartTime time.Time
	Found     int
	Total     int
	Processed int
}

// IsRunning returns true while a run is between start and completion
func (s RunState) IsRunning() bool {
	return s.Phase == PhaseScanning || s.Phase == PhaseDistributing || s.Phase == PhaseReporting
}

// Elapsed returns time since the run started
func (s RunState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Second)
}
