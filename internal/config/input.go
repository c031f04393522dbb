package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a case file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the encoding from the file extension; anything that is
// not .json is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// InputParser handles parsing of taxpayer case files
type InputParser struct {
	// Registry, when set, is used to default and check the assessment year
	Registry *regime.Registry
}

// NewInputParser creates a new input parser
func NewInputParser(registry *regime.Registry) *InputParser {
	return &InputParser{Registry: registry}
}

// LoadFromFile loads a case from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Case, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatForPath(filename))
}

// Parse decodes and validates a case. Unknown keys are rejected so that a
// misspelt deduction or income head is not silently ignored.
func (ip *InputParser) Parse(data []byte, format Format) (*domain.Case, error) {
	var c domain.Case
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	ip.applyDefaults(&c)

	if err := ip.ValidateCase(&c); err != nil {
		return nil, fmt.Errorf("case validation failed: %w", err)
	}
	return &c, nil
}

func (ip *InputParser) applyDefaults(c *domain.Case) {
	if c.AssessmentYear == "" && ip.Registry != nil {
		c.AssessmentYear = ip.Registry.Latest()
	}
	if c.Taxpayer.EntityType == "" {
		c.Taxpayer.EntityType = domain.EntityIndividual
	}
	if c.Deductions == nil {
		c.Deductions = domain.DeductionSet{}
	}
}

// ValidateCase validates a loaded case and, with a registry, checks that slab
// tables exist for its assessment year.
func (ip *InputParser) ValidateCase(c *domain.Case) error {
	if c.AssessmentYear == "" {
		return fmt.Errorf("assessment_year is required")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if ip.Registry != nil {
		if _, _, err := ip.Registry.Pair(c.AssessmentYear); err != nil {
			return err
		}
	}
	return nil
}
