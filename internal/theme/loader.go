package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Source says where a theme was read from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceFile     Source = "file"
	SourceEmbedded Source = "embedded"
	SourceUser     Source = "user"
	SourceSystem   Source = "system"
)

// ErrNotFound is returned when no search location holds the theme.
var ErrNotFound = errors.New("theme not found")

// Loader finds themes by name or path.
type Loader struct {
	// UserDir holds per-user .theme files, usually the config dir's themes.
	UserDir   string
	SystemDir string
}

// NewLoader searches userDir and the system theme directory after the
// themes built into the binary.
func NewLoader(userDir string) *Loader {
	return &Loader{UserDir: userDir, SystemDir: "/usr/share/tryon/themes"}
}

type location struct {
	source Source
	fsys   fs.FS
	name   string
}

// locations lists where name is searched, in order. An existing file path
// wins over everything; bare names get a .theme suffix.
func (l *Loader) locations(name string) []location {
	var out []location
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		abs, _ := filepath.Abs(name)
		out = append(out, location{SourceFile, os.DirFS(filepath.Dir(abs)), filepath.Base(abs)})
	}
	file := name
	if !strings.HasSuffix(file, ".theme") {
		file += ".theme"
	}
	if strings.ContainsAny(file, `/\`) {
		return out
	}
	out = append(out, location{SourceEmbedded, EmbeddedThemes, path.Join("defaults", file)})
	for _, d := range []struct {
		source Source
		dir    string
	}{{SourceUser, l.UserDir}, {SourceSystem, l.SystemDir}} {
		if d.dir != "" {
			out = append(out, location{d.source, os.DirFS(d.dir), file})
		}
	}
	return out
}

// Find loads a theme and reports where it came from. An empty name is the
// built-in default.
func (l *Loader) Find(name string) (*Theme, Source, error) {
	if name == "" {
		return Default(), SourceDefault, nil
	}
	for _, loc := range l.locations(name) {
		f, err := loc.fsys.Open(loc.name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, loc.source, err
		}
		th, err := Parse(f)
		f.Close()
		if err != nil {
			return nil, loc.source, fmt.Errorf("%s theme %s: %w", loc.source, name, err)
		}
		return th, loc.source, nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load is Find without the source.
func (l *Loader) Load(name string) (*Theme, error) {
	th, _, err := l.Find(name)
	return th, err
}
