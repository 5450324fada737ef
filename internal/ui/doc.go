// Package ui implements the terminal user interface for sgsplit using
// Bubbletea: a start form, live run progress with a log panel, and a
// completion view with per-designer load.
package ui
