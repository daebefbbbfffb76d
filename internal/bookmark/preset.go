package bookmark

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// presetFile is the on-disk form of a bookmark table.
//
// TOML:
//
//	[[bookmark]]
//	page = 1
//	label = "封面"
//
// YAML:
//
//	bookmarks:
//	  - page: 1
//	    label: 封面
type presetFile struct {
	Bookmarks []presetRow `toml:"bookmark" yaml:"bookmarks"`
}

// Page is kept loose so that both `page = 1` and `page = "1"` load; the
// text is validated later by Parse like any operator row.
type presetRow struct {
	Page  any    `toml:"page" yaml:"page"`
	Label string `toml:"label" yaml:"label"`
}

// LoadPreset reads a bookmark table from a .toml, .yaml or .yml file.
func LoadPreset(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bookmark preset: %w", err)
	}

	var file presetFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported bookmark preset format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse bookmark preset %s: %w", path, err)
	}

	t := NewTable()
	for i, r := range file.Bookmarks {
		page := ""
		if r.Page != nil {
			page = fmt.Sprint(r.Page)
		}
		if _, err := t.Add(page, r.Label); err != nil {
			return nil, fmt.Errorf("bookmark preset %s row %d: %w", path, i+1, err)
		}
	}
	return t, nil
}
