package labelforge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/labelforge/labelforge/api"
)

// DefaultExportName is used when an export is not given a file name.
const DefaultExportName = "newlabel"

var exportNameRe = regexp.MustCompile(`^[\w\-. ]+$`)

// ValidExportName reports whether a name is safe to use as an export file
// name: word characters, dashes, dots and spaces only.
func ValidExportName(name string) bool {
	return exportNameRe.MatchString(name)
}

// LoadDesign reads a design file. JSON is the native format; .yaml/.yml
// files are accepted and converted.
func LoadDesign(path string) (api.Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.Design{}, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return api.Design{}, fmt.Errorf("parse %s: %w", path, err)
		}
		data, err = json.Marshal(raw)
		if err != nil {
			return api.Design{}, fmt.Errorf("convert %s: %w", path, err)
		}
	}

	var design api.Design
	if err := json.Unmarshal(data, &design); err != nil {
		return api.Design{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return design, nil
}

// SaveDesign writes a design as JSON.
func SaveDesign(path string, design api.Design) error {
	data, err := json.MarshalIndent(design, "", "  ")
	if err != nil {
		return fmt.Errorf("encode design: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
