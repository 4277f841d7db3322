package model

import "github.com/m-mizutani/goerr/v2"

// Discipline represents the trade responsible for an issue (e.g. civil,
// electrical). The set is site configuration, not business logic: it has
// changed between site revisions.
type Discipline struct {
	ID    string `yaml:"id"`              // Unique identifier (e.g., "eletrica")
	Name  string `yaml:"name"`            // Display name
	Color string `yaml:"color,omitempty"` // Hex color used for marks and badges
}

// Validate validates the discipline
func (d *Discipline) Validate() error {
	if d.ID == "" {
		return goerr.New("discipline ID is required")
	}
	if d.Name == "" {
		return goerr.New("discipline name is required")
	}
	// Color is optional
	return nil
}
