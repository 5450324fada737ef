//go:build windows

package scanner

import (
	"io/fs"
	"strings"
	"sync"
)

// platformRootInfo is empty on Windows; each drive is walked on its own
type platformRootInfo struct{}

func getPlatformRootInfo(path string) platformRootInfo {
	return platformRootInfo{}
}

// systemDirs are drive-level folders that never hold product images
var systemDirs = map[string]bool{
	"$recycle.bin":              true,
	"system volume information": true,
}

// shouldSkipDir skips Windows system folders at any depth
func shouldSkipDir(path string, d fs.DirEntry, rootInfo platformRootInfo, seen *sync.Map) bool {
	return systemDirs[strings.ToLower(d.Name())]
}
