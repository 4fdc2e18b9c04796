package discovery

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ApplicationsDir is the subdirectory of each data directory holding entry files
const ApplicationsDir = "applications"

// Roots joins ApplicationsDir onto the user data directory followed by the
// system data directories. Empty and repeated base directories are dropped.
func Roots(dataHome string, dataDirs []string) []string {
	bases := append([]string{dataHome}, dataDirs...)

	seen := make(map[string]bool, len(bases))
	roots := make([]string, 0, len(bases))
	for _, base := range bases {
		if base == "" || seen[base] {
			continue
		}
		seen[base] = true
		roots = append(roots, filepath.Join(base, ApplicationsDir))
	}
	return roots
}

// DefaultRoots resolves the search roots from the XDG base directories
// of the current environment.
func DefaultRoots() []string {
	return RootsFor(nil)
}

// RootsFor is DefaultRoots with dataDirs in place of $XDG_DATA_DIRS.
// An empty dataDirs keeps the environment's value.
func RootsFor(dataDirs []string) []string {
	xdg.Reload()
	if len(dataDirs) == 0 {
		dataDirs = xdg.DataDirs
	}
	return Roots(xdg.DataHome, dataDirs)
}
