//go:build linux

package tagging

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/lumipallolabs/sgsplit/internal/model"
)

// xdgTagsAttr is the freedesktop attribute read by Dolphin and Nautilus
// tag extensions
const xdgTagsAttr = "user.xdg.tags"

// xattrTagger writes the tag name as an extended attribute
type xattrTagger struct {
	labels Labels
}

func newPlatformTagger(labels Labels) Tagger {
	return &xattrTagger{labels: labels}
}

func (t *xattrTagger) Tag(path string, bg model.Background) error {
	if err := unix.Setxattr(path, xdgTagsAttr, []byte(t.labels.name(bg)), 0); err != nil {
		return fmt.Errorf("setxattr %s: %w", xdgTagsAttr, err)
	}
	return nil
}

func (t *xattrTagger) Name() string { return "xattr" }
