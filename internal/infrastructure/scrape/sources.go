package scrape

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultSources []byte

// Part is one element read from a page.
type Part struct {
	Selector string `yaml:"selector"`
	// Digits maps Persian digits and '/' to ASCII digits and '-'.
	Digits bool `yaml:"digits"`
}

// Field describes how one quote field is assembled from a single page.
type Field struct {
	URL               string `yaml:"url"`
	Parts             []Part `yaml:"parts"`
	Join              string `yaml:"join"`
	TranslateCalendar bool   `yaml:"translate_calendar"`
}

type Sources struct {
	Price Field `yaml:"price"`
	Date  Field `yaml:"date"`
}

// LoadSources reads the sources file at path, or the built-in one when path is empty.
func LoadSources(path string) (Sources, error) {
	raw := defaultSources
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Sources{}, fmt.Errorf("read sources: %w", err)
		}
		raw = b
	}
	return ParseSources(raw)
}

func ParseSources(raw []byte) (Sources, error) {
	var s Sources
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Sources{}, fmt.Errorf("parse sources: %w", err)
	}
	if err := s.Price.validate(); err != nil {
		return Sources{}, fmt.Errorf("price: %w", err)
	}
	if err := s.Date.validate(); err != nil {
		return Sources{}, fmt.Errorf("date: %w", err)
	}
	return s, nil
}

func (f Field) validate() error {
	if f.URL == "" {
		return errors.New("url is required")
	}
	if len(f.Parts) == 0 {
		return errors.New("at least one part is required")
	}
	for i, p := range f.Parts {
		if p.Selector == "" {
			return fmt.Errorf("part %d: selector is required", i)
		}
	}
	return nil
}
