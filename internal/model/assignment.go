package model

import (
	"fmt"
	"path/filepath"
)

// WorkerAssignment is one destination bucket ("designer"), not a thread
type WorkerAssignment struct {
	Index  int    // 0-based
	Name   string // e.g. "Designer_1"
	Dir    string
	Load   int // files assigned
	Groups []*Group
}

// NewWorkerAssignments creates n empty workers under root, named
// prefix1..prefixN
func NewWorkerAssignments(root, prefix string, n int) []*WorkerAssignment {
	workers := make([]*WorkerAssignment, n)
	for i := range workers {
		name := WorkerName(prefix, i)
		workers[i] = &WorkerAssignment{
			Index: i,
			Name:  name,
			Dir:   filepath.Join(root, name),
		}
	}
	return workers
}

// WorkerName returns the 1-indexed folder name for worker index i
func WorkerName(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i+1)
}

// Assign appends a group and grows the worker's load
func (w *WorkerAssignment) Assign(g *Group) {
	w.Groups = append(w.Groups, g)
	w.Load += g.Len()
}

// GroupCount returns the number of groups assigned
func (w *WorkerAssignment) GroupCount() int {
	return len(w.Groups)
}
