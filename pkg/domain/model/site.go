package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// SiteConfig holds the externally supplied site configuration: the sector
// list (each with its floor-plan document) and the discipline set
type SiteConfig struct {
	Sectors     []Sector     `yaml:"sectors"`
	Disciplines []Discipline `yaml:"disciplines"`
}

// Validate validates the site configuration
func (c *SiteConfig) Validate() error {
	if len(c.Sectors) == 0 {
		return goerr.New("at least one sector is required")
	}
	if len(c.Disciplines) == 0 {
		return goerr.New("at least one discipline is required")
	}

	sectorIDs := make(map[string]bool)
	for i, sec := range c.Sectors {
		if err := sec.Validate(); err != nil {
			return goerr.Wrap(err, "invalid sector at index",
				goerr.V("index", i),
				goerr.V("id", sec.ID))
		}
		if sectorIDs[sec.ID] {
			return goerr.New("duplicate sector ID", goerr.V("id", sec.ID))
		}
		sectorIDs[sec.ID] = true
	}

	disciplineIDs := make(map[string]bool)
	for i, dis := range c.Disciplines {
		if err := dis.Validate(); err != nil {
			return goerr.Wrap(err, "invalid discipline at index",
				goerr.V("index", i),
				goerr.V("id", dis.ID))
		}
		if disciplineIDs[dis.ID] {
			return goerr.New("duplicate discipline ID", goerr.V("id", dis.ID))
		}
		disciplineIDs[dis.ID] = true
	}

	return nil
}

// FindSectorByID finds a sector by its ID
func (c *SiteConfig) FindSectorByID(id types.SectorID) *Sector {
	for _, sec := range c.Sectors {
		if sec.ID == id.String() {
			result := sec
			return &result
		}
	}
	return nil
}

// IsValidSectorID checks if the given sector ID exists in the configuration
func (c *SiteConfig) IsValidSectorID(id types.SectorID) bool {
	return c.FindSectorByID(id) != nil
}

// FindDisciplineByID finds a discipline by its ID
func (c *SiteConfig) FindDisciplineByID(id types.DisciplineID) *Discipline {
	for _, dis := range c.Disciplines {
		if dis.ID == id.String() {
			result := dis
			return &result
		}
	}
	return nil
}

// IsValidDisciplineID checks if the given discipline ID exists in the configuration
func (c *SiteConfig) IsValidDisciplineID(id types.DisciplineID) bool {
	return c.FindDisciplineByID(id) != nil
}

// SectorName returns the display name for a sector, falling back to the
// raw ID when the sector is not configured
func (c *SiteConfig) SectorName(id types.SectorID) string {
	if sec := c.FindSectorByID(id); sec != nil {
		return sec.Name
	}
	return id.String()
}

// DisciplineName returns the display name for a discipline, falling back
// to the raw ID when the discipline is not configured
func (c *SiteConfig) DisciplineName(id types.DisciplineID) string {
	if dis := c.FindDisciplineByID(id); dis != nil {
		return dis.Name
	}
	return id.String()
}

// DefaultSiteConfig returns the built-in site configuration used when no
// configuration file is supplied
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Sectors: []Sector{
			{ID: "Fachada General Sampaio", Name: "Fachada General Sampaio", PDFPath: "/pdfs/fachada-general.pdf"},
			{ID: "Fachada Castro e Silva", Name: "Fachada Castro e Silva", PDFPath: "/pdfs/fachada-castroesilva.pdf"},
			{ID: "Fachada 24 de Maio", Name: "Fachada 24 de Maio", PDFPath: "/pdfs/fachada-24demaio.pdf"},
			{ID: "subsolo", Name: "Subsolo", PDFPath: "/pdfs/subsolo.pdf"},
			{ID: "setor-azul", Name: "Setor Azul", PDFPath: "/pdfs/setor-azul.pdf"},
			{ID: "setor-amarelo", Name: "Setor Amarelo", PDFPath: "/pdfs/setor-amarelo.pdf"},
			{ID: "setor-laranja", Name: "Setor Laranja", PDFPath: "/pdfs/setor-laranja.pdf"},
			{ID: "setor-verde", Name: "Setor Verde", PDFPath: "/pdfs/setor-verde.pdf"},
			{ID: "setor-branco", Name: "Setor Branco", PDFPath: "/pdfs/setor-branco.pdf"},
			{ID: "setor-vermelho", Name: "Setor Vermelho", PDFPath: "/pdfs/setor-vermelho.pdf"},
			{ID: "estac-coberto", Name: "Estacionamento Coberto", PDFPath: "/pdfs/estac-coberto.pdf"},
			{ID: "estac-descoberto", Name: "Estacionamento Descoberto", PDFPath: "/pdfs/estac-descoberto.pdf"},
		},
		Disciplines: []Discipline{
			{ID: "civil", Name: "Civil", Color: "#3B82F6"},
			{ID: "eletrica", Name: "Elétrica", Color: "#F59E0B"},
			{ID: "combate", Name: "Combate a Incêndio", Color: "#EF4444"},
			{ID: "climatizacao", Name: "Climatização", Color: "#10B981"},
		},
	}
}
