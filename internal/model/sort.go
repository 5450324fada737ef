package model

import "sort"

// SortGroupsBySize sorts groups by file count descending, then by id ascending
func SortGroupsBySize(groups []*Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		li, lj := groups[i].Len(), groups[j].Len()
		if li != lj {
			return li > lj
		}
		return groups[i].ID < groups[j].ID
	})
}
