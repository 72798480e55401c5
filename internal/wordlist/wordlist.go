// Package wordlist loads translation units from files.
package wordlist

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/wordmatch/internal/model"
)

//go:embed default_units.toml
var defaultUnits []byte

type unitsFile struct {
	Units []model.SourceUnit `toml:"unit"`
}

// DefaultUnits returns the units bundled with the binary.
func DefaultUnits() ([]model.SourceUnit, error) {
	return ParseTOML(bytes.NewReader(defaultUnits))
}

// LoadUnits reads units from a TOML or XLSX file, chosen by extension. An
// empty path selects the bundled units.
func LoadUnits(path string) ([]model.SourceUnit, error) {
	if path == "" {
		return DefaultUnits()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path, XLSXOptions{SkipHeader: true})
	case ".toml", "":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				// Best-effort close for read-only units file.
				_ = cerr
			}
		}()
		return ParseTOML(file)
	default:
		return nil, fmt.Errorf("unsupported units file %q", path)
	}
}

// ParseTOML decodes `[[unit]]` tables, normalizes their text and validates them.
func ParseTOML(r io.Reader) ([]model.SourceUnit, error) {
	var file unitsFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode units: %w", err)
	}
	units := Normalize(file.Units)
	if err := Validate(units); err != nil {
		return nil, err
	}
	return units, nil
}

// WriteTOML encodes units as `[[unit]]` tables.
func WriteTOML(w io.Writer, units []model.SourceUnit) error {
	return toml.NewEncoder(w).Encode(unitsFile{Units: units})
}
