package shaders

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.kage
var shadersFS embed.FS

// DefaultDir is where on-disk shader overrides are looked up.
const DefaultDir = "filter/shaders"

// Loader reads Kage sources, preferring a copy on disk under Dir over the
// embedded one so shaders can be edited while a program runs.
type Loader struct {
	Dir string
}

// NewLoader returns a loader that checks DefaultDir before the embedded files.
func NewLoader() Loader {
	return Loader{Dir: DefaultDir}
}

// EmbeddedOnly returns a loader that never touches the disk.
func EmbeddedOnly() Loader {
	return Loader{}
}

func (l Loader) LoadShader(name string) ([]byte, error) {
	clean := cleanShaderPath(name)
	if clean == "" {
		return nil, fmt.Errorf("shaders: empty shader name")
	}
	if l.Dir != "" {
		if data, err := os.ReadFile(l.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	data, err := shadersFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("shaders: load %s: %w", clean, err)
	}
	return data, nil
}

// ModTime reports the modification time of the on-disk override, if any.
func (l Loader) ModTime(name string) (time.Time, bool) {
	if l.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(l.diskPath(cleanShaderPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Names lists the embedded shader files.
func Names() []string {
	entries, err := shadersFS.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}

func (l Loader) diskPath(clean string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(clean))
}

func cleanShaderPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		return filepath.Base(path)
	}
	if after, ok := strings.CutPrefix(s, "filter/shaders/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "shaders/"); ok {
		s = after
	}
	if !strings.HasSuffix(strings.ToLower(s), ".kage") {
		s += ".kage"
	}
	return s
}
