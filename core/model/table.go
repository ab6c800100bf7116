package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSpecTable loads a vehicle spec table from a JSON or YAML file.
func LoadSpecTable(path string) ([]VehicleSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeSpecTable(f, ext)
}

// DecodeSpecTable reads from r to decode a vehicle spec table.
func DecodeSpecTable(r io.Reader, format string) ([]VehicleSpec, error) {
	var specs []VehicleSpec
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(&specs); err != nil {
			return nil, err
		}
	case "json":
		dec := json.NewDecoder(r)
		if err := dec.Decode(&specs); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported spec table format: %s", format)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("spec table is empty")
	}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid spec table: %w", err)
		}
	}
	return specs, nil
}
