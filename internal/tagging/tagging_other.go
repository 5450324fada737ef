//go:build !darwin && !linux

package tagging

// newPlatformTagger returns a no-op on platforms without a tag facility
func newPlatformTagger(labels Labels) Tagger {
	return Noop{}
}
