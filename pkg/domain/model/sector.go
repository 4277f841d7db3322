package model

import "github.com/m-mizutani/goerr/v2"

// Sector represents a named physical zone of the site, backed by one
// reference floor-plan document with one or more pages
type Sector struct {
	ID      string `yaml:"id"`       // Unique identifier
	Name    string `yaml:"name"`     // Display name
	PDFPath string `yaml:"pdf_path"` // Path to the reference floor-plan document
}

// Validate validates the sector
func (s *Sector) Validate() error {
	if s.ID == "" {
		return goerr.New("sector ID is required")
	}
	if s.Name == "" {
		return goerr.New("sector name is required")
	}
	if s.PDFPath == "" {
		return goerr.New("sector PDF path is required")
	}
	return nil
}
