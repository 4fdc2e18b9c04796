package domain

// DesktopEntry is the parsed content of one desktop entry file
type DesktopEntry struct {
	Name      string
	Icon      string
	Exec      string // raw exec template, field codes still present
	Type      string
	NoDisplay bool
	Hidden    bool
}

// Application is one catalog row built from a usable desktop entry
type Application struct {
	Name string
	Icon string
	Exec string
	Path string // entry file it was parsed from
}

// ScanStats summarizes a catalog build
type ScanStats struct {
	Roots   []string
	Files   int // entry files found after dedup
	Entries int // entries accepted into the catalog
}
