package catalog

import "quicklaunch/internal/domain"

// Source is the read-only view of a catalog used by the query engine
type Source interface {
	Applications() []domain.Application
	Command(name string) (string, bool)
	Len() int
}
