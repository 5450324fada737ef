package scanner

import (
	"context"

	"github.com/lumipallolabs/sgsplit/internal/model"
)

// ProgressFunc receives the cumulative number of qualifying files found.
// Calls are serialized and the count increases by one on every call.
type ProgressFunc func(found int)

// Scanner defines the interface for image discovery
type Scanner interface {
	// Scan walks root recursively and returns the discovered images
	Scan(ctx context.Context, root string, progress ProgressFunc) (*Inventory, error)
}

// Inventory is the result of a scan
type Inventory struct {
	Root string

	// Files holds every qualifying file, grouped or not, in discovery order
	Files []model.ImageFile

	// Groups holds the grouped files in order of first discovery
	Groups []*model.Group

	// SkippedDirs lists hidden, unreadable and other-device directories
	// that were not walked
	SkippedDirs []string

	byID map[string]*model.Group
}

// Group returns the group with the given id
func (inv *Inventory) Group(id string) (*model.Group, bool) {
	g, ok := inv.byID[id]
	return g, ok
}

// GroupedCount returns the number of files that belong to a group
func (inv *Inventory) GroupedCount() int {
	n := 0
	for _, g := range inv.Groups {
		n += g.Len()
	}
	return n
}

// newInventory groups files by id, keeping discovery order within a group
func newInventory(root string, files []model.ImageFile) *Inventory {
	inv := &Inventory{
		Root:  root,
		Files: files,
		byID:  make(map[string]*model.Group),
	}
	for _, f := range files {
		if !f.HasGroup() {
			continue
		}
		g, ok := inv.byID[f.GroupID]
		if !ok {
			g = &model.Group{ID: f.GroupID}
			inv.byID[f.GroupID] = g
			inv.Groups = append(inv.Groups, g)
		}
		g.Files = append(g.Files, f)
	}
	return inv
}
