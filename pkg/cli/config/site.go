package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Site holds the site layout configuration source
type Site struct {
	ConfigPath string
}

// Flags returns CLI flags for Site configuration
func (s *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "site-config",
			Usage:       "Path to YAML file defining sectors and disciplines",
			Category:    "Site",
			Sources:     cli.EnvVars("INCENDIO_SITE_CONFIG"),
			Destination: &s.ConfigPath,
		},
	}
}

// Configure loads the site layout. Without a file the built-in default
// layout is used.
func (s *Site) Configure(ctx context.Context) (*model.SiteConfig, error) {
	if s.ConfigPath == "" {
		ctxlog.From(ctx).Info("Using default site layout")
		return model.DefaultSiteConfig(), nil
	}

	site, err := LoadSiteFromFile(s.ConfigPath)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("Loaded site layout",
		"path", s.ConfigPath,
		"sectors", len(site.Sectors),
		"disciplines", len(site.Disciplines),
	)
	return site, nil
}

// LogValue returns structured log value
func (s Site) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("configPath", s.ConfigPath),
	)
}

// LoadSiteFromFile loads the sector and discipline layout from a YAML file
func LoadSiteFromFile(path string) (*model.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "site configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read site configuration file",
			goerr.V("path", path))
	}

	var site model.SiteConfig
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML site configuration",
			goerr.V("path", path))
	}

	if err := site.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid site configuration",
			goerr.V("path", path))
	}

	return &site, nil
}
