package discovery

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"quicklaunch/internal/catalog"
	"quicklaunch/internal/desktopentry"
	"quicklaunch/internal/domain"
	"quicklaunch/internal/eventbus"
)

// DefaultExtension is the suffix of desktop entry files
const DefaultExtension = ".desktop"

// Builder finds desktop entry files under a set of roots and assembles the catalog
type Builder struct {
	bus       eventbus.EventBus
	logger    *log.Logger
	extension string
}

// NewBuilder creates a catalog builder. bus may be nil. An empty extension
// means DefaultExtension.
func NewBuilder(bus eventbus.EventBus, logger *log.Logger, extension string) *Builder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if extension == "" {
		extension = DefaultExtension
	}
	return &Builder{
		bus:       bus,
		logger:    logger,
		extension: extension,
	}
}

// Build walks roots, parses every entry file found and returns the catalog.
// Rows are added in sorted path order. Unreadable or unusable files are
// skipped; missing roots are ignored.
func (b *Builder) Build(ctx context.Context, roots []string) (*catalog.Catalog, domain.ScanStats) {
	paths := b.Collect(ctx, roots)

	cat := catalog.New()
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		entry, ok, err := desktopentry.ParseFile(path)
		if err != nil {
			b.logger.Debug("skipping unreadable entry", "path", path, "err", err)
			continue
		}
		if !ok {
			continue
		}

		cat.Add(domain.Application{
			Name: entry.Name,
			Icon: entry.Icon,
			Exec: entry.Exec,
			Path: path,
		})
	}

	stats := domain.ScanStats{
		Roots:   roots,
		Files:   len(paths),
		Entries: cat.Len(),
	}
	b.logger.Info("catalog built", "roots", len(roots), "files", stats.Files, "entries", stats.Entries, "names", cat.Names())

	if b.bus != nil {
		b.bus.Publish(eventbus.CatalogBuiltEvent{Stats: stats})
	}

	return cat, stats
}

// Collect returns the sorted, duplicate-free list of entry files under roots.
// The same file reached through two roots appears once.
func (b *Builder) Collect(ctx context.Context, roots []string) []string {
	var paths []string
	for _, root := range roots {
		if ctx.Err() != nil {
			break
		}
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			b.logger.Debug("skipping search root", "root", root, "err", err)
			continue
		}
		b.walk(ctx, abs, make(map[string]bool), &paths)
	}

	slices.Sort(paths)
	return slices.Compact(paths)
}

// walk descends into dir depth first. ancestors holds the resolved paths of
// the directories currently being walked so a symlink pointing back up the
// tree is not followed again.
func (b *Builder) walk(ctx context.Context, dir string, ancestors map[string]bool, out *[]string) {
	if ctx.Err() != nil {
		return
	}

	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		b.logger.Debug("skipping directory", "path", dir, "err", err)
		return
	}
	if ancestors[real] {
		b.logger.Debug("symlink cycle, not descending", "path", dir, "target", real)
		return
	}
	ancestors[real] = true
	defer delete(ancestors, real)

	entries, err := os.ReadDir(dir)
	if err != nil {
		b.logger.Debug("error reading directory", "path", dir, "err", err)
		return
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())

		mode := e.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				b.logger.Debug("dangling symlink", "path", path, "err", err)
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			b.walk(ctx, path, ancestors, out)
		case mode.IsRegular() && b.isEntryFile(e.Name()):
			*out = append(*out, path)
		}
	}
}

func (b *Builder) isEntryFile(name string) bool {
	return len(name) > len(b.extension) && strings.HasSuffix(name, b.extension)
}
