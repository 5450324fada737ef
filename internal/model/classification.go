package model

// Background is the classified background of an image
type Background int

const (
	BackgroundOther Background = iota
	BackgroundLight
)

// String returns a human-readable background name
func (b Background) String() string {
	switch b {
	case BackgroundLight:
		return "white background"
	default:
		return "non-white background"
	}
}

// Classification is the outcome of classifying one file. A failed
// classification carries Err and always counts as BackgroundOther.
type Classification struct {
	Background Background
	Err        error
}

// Light reports whether the file was classified as a white background
func (c Classification) Light() bool {
	return c.Err == nil && c.Background == BackgroundLight
}

// Failed reports whether classification could not be performed
func (c Classification) Failed() bool {
	return c.Err != nil
}

// Classified returns a successful classification
func Classified(light bool) Classification {
	if light {
		return Classification{Background: BackgroundLight}
	}
	return Classification{Background: BackgroundOther}
}

// ClassificationFailed returns a failed classification for err
func ClassificationFailed(err error) Classification {
	return Classification{Background: BackgroundOther, Err: err}
}
