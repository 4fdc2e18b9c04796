package desktopentry

import (
	"fmt"
	"os"
	"strings"

	"quicklaunch/internal/domain"
)

// TypeApplication is the only entry type that reaches the catalog
const TypeApplication = "Application"

const (
	keyName      = "Name="
	keyIcon      = "Icon="
	keyExec      = "Exec="
	keyType      = "Type="
	keyNoDisplay = "NoDisplay="
	keyHidden    = "Hidden="
)

// Parse reads the key/value lines of one desktop entry. It returns false when
// the entry is hidden, is not an application, or lacks a name, icon or exec.
//
// The first Name, Icon, Exec and Type line wins. A NoDisplay or Hidden line
// with value "true" (any case) rejects the entry wherever it appears.
func Parse(contents string) (domain.DesktopEntry, bool) {
	var (
		entry                     domain.DesktopEntry
		hasName, hasIcon, hasExec bool
		hasType                   bool
	)

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case strings.HasPrefix(line, keyName):
			if !hasName {
				entry.Name = strings.TrimPrefix(line, keyName)
				hasName = true
			}
		case strings.HasPrefix(line, keyIcon):
			if !hasIcon {
				entry.Icon = strings.TrimPrefix(line, keyIcon)
				hasIcon = true
			}
		case strings.HasPrefix(line, keyExec):
			if !hasExec {
				entry.Exec = strings.TrimPrefix(line, keyExec)
				hasExec = true
			}
		case strings.HasPrefix(line, keyType):
			if !hasType {
				entry.Type = strings.TrimPrefix(line, keyType)
				hasType = true
			}
		case strings.HasPrefix(line, keyNoDisplay):
			if isTrue(strings.TrimPrefix(line, keyNoDisplay)) {
				entry.NoDisplay = true
			}
		case strings.HasPrefix(line, keyHidden):
			if isTrue(strings.TrimPrefix(line, keyHidden)) {
				entry.Hidden = true
			}
		}
	}

	if entry.NoDisplay || entry.Hidden {
		return domain.DesktopEntry{}, false
	}
	if !hasType || entry.Type != TypeApplication {
		return domain.DesktopEntry{}, false
	}
	if !hasName || !hasIcon || !hasExec {
		return domain.DesktopEntry{}, false
	}

	return entry, true
}

// ParseFile reads and parses the entry file at path. A read error is
// returned as is; an unusable entry yields ok == false and a nil error.
func ParseFile(path string) (entry domain.DesktopEntry, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.DesktopEntry{}, false, fmt.Errorf("failed to read desktop entry: %w", err)
	}
	entry, ok = Parse(string(data))
	return entry, ok, nil
}

func isTrue(value string) bool {
	return strings.ToLower(value) == "true"
}
