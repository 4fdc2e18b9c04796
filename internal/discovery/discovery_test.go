package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicklaunch/internal/eventbus"
)

func writeEntry(t *testing.T, path, name, exec string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	contents := fmt.Sprintf("[Desktop Entry]\nType=Application\nName=%s\nIcon=%s\nExec=%s\n", name, name, exec)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestCollectSortsAndFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "zed.desktop"), "Zed", "zed")
	writeEntry(t, filepath.Join(root, "sub", "deeper", "alpha.desktop"), "Alpha", "alpha")
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".desktop"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.desktop"), 0o755))

	paths := NewBuilder(nil, nil, "").Collect(context.Background(), []string{root})

	assert.Equal(t, []string{
		filepath.Join(root, "sub", "deeper", "alpha.desktop"),
		filepath.Join(root, "zed.desktop"),
	}, paths)
}

func TestCollectDeduplicatesOverlappingRoots(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "sub", "app.desktop"), "App", "app")

	b := NewBuilder(nil, nil, "")
	paths := b.Collect(context.Background(), []string{root, filepath.Join(root, "sub"), root})
	assert.Len(t, paths, 1)

	cat, stats := b.Build(context.Background(), []string{root, filepath.Join(root, "sub")})
	assert.Equal(t, 1, cat.Len())
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 1, stats.Entries)
}

func TestCollectSkipsMissingRoots(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "app.desktop"), "App", "app")

	paths := NewBuilder(nil, nil, "").Collect(context.Background(), []string{
		filepath.Join(root, "does-not-exist"),
		"",
		root,
	})
	assert.Len(t, paths, 1)
}

func TestCollectFollowsSymlinksWithoutLooping(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeEntry(t, filepath.Join(other, "linked.desktop"), "Linked", "linked")
	writeEntry(t, filepath.Join(root, "apps", "real.desktop"), "Real", "real")

	if err := os.Symlink(filepath.Join(other, "linked.desktop"), filepath.Join(root, "linked.desktop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(root, filepath.Join(root, "apps", "loop")))

	done := make(chan []string, 1)
	go func() {
		done <- NewBuilder(nil, nil, "").Collect(context.Background(), []string{root})
	}()

	select {
	case paths := <-done:
		assert.Contains(t, paths, filepath.Join(root, "linked.desktop"))
		assert.Contains(t, paths, filepath.Join(root, "apps", "real.desktop"))
	case <-time.After(5 * time.Second):
		t.Fatal("collect did not terminate on a symlink cycle")
	}
}

func TestBuildSkipsUnusableEntries(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "good.desktop"), "Good", "good %U")
	require.NoError(t, os.WriteFile(filepath.Join(root, "hidden.desktop"),
		[]byte("Type=Application\nName=Hidden\nIcon=h\nExec=h\nNoDisplay=true\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.desktop"), []byte("not an entry"), 0o644))

	cat, stats := NewBuilder(nil, nil, "").Build(context.Background(), []string{root})

	require.Equal(t, 1, cat.Len())
	app := cat.Applications()[0]
	assert.Equal(t, "Good", app.Name)
	assert.Equal(t, "good %U", app.Exec, "exec is stored raw")
	assert.Equal(t, filepath.Join(root, "good.desktop"), app.Path)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 1, stats.Entries)
}

func TestBuildLastSortedPathWinsForDuplicateNames(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "b", "editor.desktop"), "Editor", "nano")
	writeEntry(t, filepath.Join(root, "a", "editor.desktop"), "Editor", "vim")

	cat, _ := NewBuilder(nil, nil, "").Build(context.Background(), []string{root})

	cmd, ok := cat.Command("Editor")
	require.True(t, ok)
	assert.Equal(t, "nano", cmd)

	apps := cat.Applications()
	require.Len(t, apps, 2)
	assert.Equal(t, "vim", apps[0].Exec)
	assert.Equal(t, "nano", apps[1].Exec)
}

func TestBuildPublishesCatalogBuilt(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "app.desktop"), "App", "app")

	bus := eventbus.New(nil)
	got := make(chan eventbus.CatalogBuiltEvent, 1)
	bus.Subscribe(eventbus.EventCatalogBuilt, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.CatalogBuiltEvent)
	})

	NewBuilder(bus, nil, "").Build(context.Background(), []string{root})
	bus.Close()

	require.Len(t, got, 1)
	assert.Equal(t, 1, (<-got).Stats.Entries)
}

func TestBuildHonorsCustomExtension(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "app.entry"), "App", "app")
	writeEntry(t, filepath.Join(root, "other.desktop"), "Other", "other")

	cat, _ := NewBuilder(nil, nil, ".entry").Build(context.Background(), []string{root})
	require.Equal(t, 1, cat.Len())
	assert.Equal(t, "App", cat.Applications()[0].Name)
}

func TestBuildStopsOnCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, filepath.Join(root, "app.desktop"), "App", "app")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cat, _ := NewBuilder(nil, nil, "").Build(ctx, []string{root})
	assert.Zero(t, cat.Len())
}

func TestRoots(t *testing.T) {
	roots := Roots("/home/u/.local/share", []string{"/usr/local/share", "", "/usr/share", "/usr/local/share"})
	assert.Equal(t, []string{
		"/home/u/.local/share/applications",
		"/usr/local/share/applications",
		"/usr/share/applications",
	}, roots)
}

func TestDefaultRootsUsesXDGEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_DATA_DIRS", "/opt/share:/usr/share")

	roots := DefaultRoots()
	require.NotEmpty(t, roots)
	assert.Equal(t, filepath.Join(home, "data", "applications"), roots[0])
	assert.Contains(t, roots, "/opt/share/applications")
	assert.Contains(t, roots, "/usr/share/applications")
}

func TestRootsForReplacesDataDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_DATA_DIRS", "/usr/share")

	roots := RootsFor([]string{"/custom/share"})
	assert.Equal(t, []string{
		filepath.Join(home, "applications"),
		"/custom/share/applications",
	}, roots)
}
