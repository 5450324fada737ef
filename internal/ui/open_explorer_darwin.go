//go:build darwin

package ui

import "os/exec"

// openInFileManager opens a folder in a new Finder window
func openInFileManager(path string) error {
	cmd := exec.Command("open", path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
