//go:build !windows && !darwin

package ui

import (
	"os/exec"

	"github.com/lumipallolabs/sgsplit/internal/logging"
)

// openInFileManager opens a folder with xdg-open when available
func openInFileManager(path string) error {
	bin, err := exec.LookPath("xdg-open")
	if err != nil {
		logging.Debug.Printf("openInFileManager: xdg-open not found")
		return nil
	}
	cmd := exec.Command(bin, path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
