package presets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPresetPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml
var PresetsFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPresetPath(name)
	if data, err := os.ReadFile(diskPresetPath(clean)); err == nil {
		return data, nil
	}
	return PresetsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPresetPath(name)
	info, err := os.Stat(diskPresetPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// List returns the names of the embedded presets without extension.
func List() []string {
	entries, err := PresetsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isSpecFile(e.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

func cleanPresetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "presets/"); ok {
		s = after
	}
	if !isSpecFile(s) {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "presets/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "presets/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	if !isScriptFile(s) {
		s += ".tengo"
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPresetPath(clean string) string {
	return filepath.Join("presets", filepath.FromSlash(clean))
}
