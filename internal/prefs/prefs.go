// Package prefs remembers form values and lifetime counters between
// sessions.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumipallolabs/sgsplit/internal/logging"
)

// Prefs holds persistent preferences
type Prefs struct {
	LastFolder    string `json:"last_folder,omitempty"`
	LastWorkers   int    `json:"last_workers,omitempty"`
	RunsLifetime  int    `json:"runs_lifetime"`
	FilesLifetime int    `json:"files_lifetime"`
}

// Manager handles loading and saving prefs
type Manager struct {
	path         string
	prefs        Prefs
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a manager for the default prefs file
func NewManager() *Manager {
	return NewManagerAt(defaultPath())
}

// NewManagerAt creates a manager for the prefs file at path
func NewManagerAt(path string) *Manager {
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// defaultPath returns the default prefs file path
func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sgsplit-prefs.json"
	}
	return filepath.Join(home, ".sgsplit", "prefs.json")
}

// Load loads prefs from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.prefs = Prefs{}
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &m.prefs)
}

// Save saves prefs to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves prefs without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.prefs, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// Get returns a copy of the current prefs
func (m *Manager) Get() Prefs {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs
}

// SetLastRun remembers the form values of a started run
func (m *Manager) SetLastRun(folder string, workers int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.prefs.LastFolder == folder && m.prefs.LastWorkers == workers {
		return
	}
	m.prefs.LastFolder = folder
	m.prefs.LastWorkers = workers
	m.scheduleSaveLocked()
}

// AddRun counts a completed run and the files it moved
func (m *Manager) AddRun(files int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prefs.RunsLifetime++
	m.prefs.FilesLifetime += files
	m.scheduleSaveLocked()
}

// scheduleSaveLocked marks prefs dirty and restarts the debounce timer
func (m *Manager) scheduleSaveLocked() {
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			if err := m.saveLocked(); err != nil {
				logging.Debug.Printf("prefs: background save: %v", err)
			}
		}
	})
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
