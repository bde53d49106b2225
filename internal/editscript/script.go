// Package editscript parses and applies scripted edits to a resume section store.
// A script stands in for the sequence of edits a form would make.
package editscript

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Operation kinds
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpSet    = "set"
)

// Operation is one edit. Index is a pointer so a missing index is distinguishable from 0.
type Operation struct {
	Op      string `yaml:"op" json:"op" validate:"required,oneof=add update set"`
	Section string `yaml:"section,omitempty" json:"section,omitempty" validate:"required_unless=Op set"`
	Index   *int   `yaml:"index,omitempty" json:"index,omitempty" validate:"required_if=Op update"`
	Field   string `yaml:"field,omitempty" json:"field,omitempty" validate:"required_unless=Op add"`
	Value   string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Script is an ordered list of operations
type Script struct {
	Operations []Operation `yaml:"operations" json:"operations" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Parse decodes a YAML (or JSON) script and validates its structure
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var script Script
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Message: "script is empty"}
		}
		return nil, &ParseError{Message: "failed to decode script", Cause: err}
	}
	if err := validate.Struct(&script); err != nil {
		return nil, &ParseError{Message: "invalid script", Cause: err}
	}
	return &script, nil
}

// Load reads and parses a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return Parse(data)
}
