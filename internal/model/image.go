package model

import (
	"path/filepath"
	"strings"
)

const (
	numericIDLength  = 13 // all-digit prefix, e.g. an EAN-13 barcode
	fallbackIDLength = 12
)

// ImageFile is a discovered image. Its identity is Path.
type ImageFile struct {
	Path    string
	Name    string
	Ext     string // lowercase, including the dot
	GroupID string // empty when the name yields no group id
	Size    int64
}

// NewImageFile builds an ImageFile from a path, deriving the
// extension and group id from the base name
func NewImageFile(path string, size int64) ImageFile {
	name := filepath.Base(path)
	id, _ := GroupID(name)
	return ImageFile{
		Path:    path,
		Name:    name,
		Ext:     strings.ToLower(filepath.Ext(name)),
		GroupID: id,
		Size:    size,
	}
}

// HasGroup reports whether the file takes part in distribution
func (f ImageFile) HasGroup() bool {
	return f.GroupID != ""
}

// GroupID derives the grouping identifier from a file name.
//
// If the first 13 characters are all decimal digits they form the id.
// Otherwise any name of at least 12 characters uses its first 12
// characters, digits or not. Shorter names have no id.
//
// The rules are asymmetric. Folders already on disk were split with them,
// so do not tighten the fallback.
func GroupID(name string) (string, bool) {
	runes := []rune(name)
	if len(runes) >= numericIDLength && allDigits(runes[:numericIDLength]) {
		return string(runes[:numericIDLength]), true
	}
	if len(runes) >= fallbackIDLength {
		return string(runes[:fallbackIDLength]), true
	}
	return "", false
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Group is a non-empty run of files sharing one group id. A group is never
// split across workers.
type Group struct {
	ID    string
	Files []ImageFile
}

// Len returns the number of files in the group
func (g *Group) Len() int {
	return len(g.Files)
}
