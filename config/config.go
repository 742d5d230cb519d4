// Package config loads container configuration payloads from files.
//
// A payload file holds the four sections of depot.Config. Factories name
// factory classes registered with depot.Types; services hold plain values:
//
//	services:
//	  app.name: ${APP_NAME}
//	factories:
//	  db: example.com/app.DBFactory
//	aliases:
//	  database: db
//	invokables:
//	  mailer: example.com/app.Mailer
//	  example.com/app.Clock: ~
//
// YAML (.yaml, .yml) and JSON with comments and trailing commas (.json,
// .jsonc) are supported; the format is chosen by file extension.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/xraph/depot"
)

// Format is a payload file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is the on-disk shape of a payload.
type File struct {
	Services   map[string]any    `yaml:"services" json:"services"`
	Factories  map[string]string `yaml:"factories" json:"factories"`
	Aliases    map[string]string `yaml:"aliases" json:"aliases"`
	Invokables map[string]string `yaml:"invokables" json:"invokables"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: unsupported config extension %q", path, filepath.Ext(path))
	}
}

// Parse decodes data in the given format. Unknown top-level sections are
// rejected with depot.ErrInvalidArgument.
func Parse(data []byte, format Format) (*File, error) {
	var file File

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, parseError(err)
		}
	case FormatJSON:
		stripped := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(stripped)) == 0 {
			break
		}
		dec := json.NewDecoder(bytes.NewReader(stripped))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, parseError(err)
		}
	default:
		return nil, depot.ErrInvalidArgument(fmt.Sprintf("unknown config format %q", format))
	}

	return &file, nil
}

func parseError(err error) error {
	return fmt.Errorf("parsing config: %w", depot.ErrInvalidArgument(err.Error()))
}

// ReadFile reads and parses a payload file.
func ReadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	file, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return file, nil
}

// Validate checks the file for empty identifiers, class names and targets.
func (f *File) Validate() error {
	for id := range f.Services {
		if id == "" {
			return depot.ErrInvalidArgument("service identifier cannot be empty")
		}
	}

	for id, class := range f.Factories {
		if id == "" {
			return depot.ErrInvalidArgument("factory identifier cannot be empty")
		}
		if class == "" {
			return depot.ErrInvalidArgument(fmt.Sprintf("factory '%s' has no class", id))
		}
	}

	for alias, target := range f.Aliases {
		if alias == "" {
			return depot.ErrInvalidArgument("alias identifier cannot be empty")
		}
		if target == "" {
			return depot.ErrInvalidArgument(fmt.Sprintf("alias '%s' has an empty target", alias))
		}
	}

	for id := range f.Invokables {
		if id == "" {
			return depot.ErrInvalidArgument("invokable identifier cannot be empty")
		}
	}

	return nil
}

// Config converts the file into a container payload. Factory entries become
// lazily loaded factory classes.
func (f *File) Config() depot.Config {
	cfg := depot.Config{
		Services:   f.Services,
		Aliases:    f.Aliases,
		Invokables: f.Invokables,
	}

	if f.Factories != nil {
		cfg.Factories = make(map[string]depot.FactoryRef, len(f.Factories))
		for id, class := range f.Factories {
			cfg.Factories[id] = depot.Class(class)
		}
	}

	return cfg
}
