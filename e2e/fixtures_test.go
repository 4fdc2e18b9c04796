//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EntryOption is a function that configures desktop entry creation
type EntryOption func(*entryOptions)

type entryOptions struct {
	icon      string
	typ       string
	noDisplay bool
}

// WithIcon sets the Icon= line
func WithIcon(icon string) EntryOption {
	return func(opts *entryOptions) {
		opts.icon = icon
	}
}

// WithType sets the Type= line
func WithType(typ string) EntryOption {
	return func(opts *entryOptions) {
		opts.typ = typ
	}
}

// Hidden marks the entry NoDisplay=true
func Hidden() EntryOption {
	return func(opts *entryOptions) {
		opts.noDisplay = true
	}
}

// CreateTestWorkspace creates the isolated home directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	for _, dir := range []string{"data/applications", "config", "state", "system"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			return "", err
		}
	}
	return tmpDir, nil
}

// AppsDir is the user application directory inside the workspace
func (tf *TUITestFramework) AppsDir() string {
	return filepath.Join(tf.workspace, "data", "applications")
}

// LogPath is where the app writes its log inside the workspace
func (tf *TUITestFramework) LogPath() string {
	return filepath.Join(tf.workspace, "state", "quicklaunch", "quicklaunch.log")
}

// CreateDesktopEntry writes file under the user application directory
func (tf *TUITestFramework) CreateDesktopEntry(file, name, exec string, options ...EntryOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	opts := &entryOptions{icon: "application-x-executable", typ: "Application"}
	for _, opt := range options {
		opt(opts)
	}

	lines := []string{
		"[Desktop Entry]",
		"Type=" + opts.typ,
		"Name=" + name,
		"Icon=" + opts.icon,
		"Exec=" + exec,
	}
	if opts.noDisplay {
		lines = append(lines, "NoDisplay=true")
	}

	path := filepath.Join(tf.AppsDir(), file)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return "", err
	}
	return path, nil
}
