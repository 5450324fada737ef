//go:build windows

package ui

import (
	"os/exec"
	"path/filepath"
)

// openInFileManager opens a folder in Explorer. explorer.exe exits non-zero
// even on success, so only the start error is reported.
func openInFileManager(path string) error {
	cmd := exec.Command("explorer.exe", filepath.Clean(path))
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
