// Package tagging applies file-manager labels to classified files.
// The implementation is chosen once per platform; tagging is always best
// effort and callers only log its errors.
package tagging

import "github.com/lumipallolabs/sgsplit/internal/model"

// Tagger applies a visual label reflecting a file's background
type Tagger interface {
	Tag(path string, bg model.Background) error
	Name() string
}

// Labels configures the label values written for each background
type Labels struct {
	// Finder label indexes (macOS): 0 none, 1 orange, 2 red, 3 yellow,
	// 4 blue, 5 purple, 6 green, 7 gray
	LightIndex int
	OtherIndex int

	// Tag names written to user.xdg.tags (Linux file managers)
	LightName string
	OtherName string
}

// DefaultLabels returns green for white backgrounds and blue otherwise
func DefaultLabels() Labels {
	return Labels{
		LightIndex: 6,
		OtherIndex: 4,
		LightName:  "White Background",
		OtherName:  "Non-White Background",
	}
}

func (l Labels) index(bg model.Background) int {
	if bg == model.BackgroundLight {
		return l.LightIndex
	}
	return l.OtherIndex
}

func (l Labels) name(bg model.Background) string {
	if bg == model.BackgroundLight {
		return l.LightName
	}
	return l.OtherName
}

// Noop is used where the platform has no tagging facility or tagging is
// disabled
type Noop struct{}

func (Noop) Tag(string, model.Background) error { return nil }
func (Noop) Name() string                       { return "none" }

// New returns the platform tagger, or Noop when disabled
func New(enabled bool, labels Labels) Tagger {
	if !enabled {
		return Noop{}
	}
	return newPlatformTagger(labels)
}
