//go:build darwin

package tagging

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/lumipallolabs/sgsplit/internal/model"
)

// finderTagger sets the Finder label index through AppleScript
type finderTagger struct {
	labels Labels
}

func newPlatformTagger(labels Labels) Tagger {
	if _, err := exec.LookPath("osascript"); err != nil {
		return Noop{}
	}
	return &finderTagger{labels: labels}
}

func (t *finderTagger) Tag(path string, bg model.Background) error {
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	script := fmt.Sprintf(`tell application "Finder" to set label index of (POSIX file "%s" as alias) to %d`,
		escaped, t.labels.index(bg))

	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (t *finderTagger) Name() string { return "finder" }
