package catalog

import "quicklaunch/internal/domain"

// Catalog holds the applications found at startup, in discovery order,
// plus a name -> exec lookup in which the last entry added for a name wins.
//
// A Catalog has a single owner. It is filled once by the builder and only
// read afterwards, so it carries no lock.
type Catalog struct {
	apps     []domain.Application
	commands map[string]string
}

var _ Source = (*Catalog)(nil)

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		commands: make(map[string]string),
	}
}

// Add appends app and registers its exec template under its name,
// replacing any earlier registration for the same name.
func (c *Catalog) Add(app domain.Application) {
	c.apps = append(c.apps, app)
	c.commands[app.Name] = app.Exec
}

// Applications returns a copy of the catalog rows in insertion order
func (c *Catalog) Applications() []domain.Application {
	result := make([]domain.Application, len(c.apps))
	copy(result, c.apps)
	return result
}

// Command returns the raw exec template registered for name
func (c *Catalog) Command(name string) (string, bool) {
	cmd, ok := c.commands[name]
	return cmd, ok
}

// Len returns the number of rows
func (c *Catalog) Len() int {
	return len(c.apps)
}

// Names returns the number of distinct display names
func (c *Catalog) Names() int {
	return len(c.commands)
}
