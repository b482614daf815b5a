// Package config loads site metadata for the club website.
package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where LoadSite looks when CLUB_SITE_CONFIG is unset.
const DefaultPath = "site.yaml"

// NavLink is a single entry in the site navigation.
type NavLink struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// Site holds the metadata shared by every rendered page.
type Site struct {
	Title   string    `yaml:"title"`
	BaseURL string    `yaml:"base_url"`
	Email   string    `yaml:"email"` // Club inbox that receives contact form mail
	Nav     []NavLink `yaml:"nav"`
}

// Default returns the configuration used when no file is present.
func Default() Site {
	return Site{
		Title:   "Harriers Running Club",
		BaseURL: "http://localhost:8080",
		Email:   "info@harriers.example",
		Nav: []NavLink{
			{Label: "Home", Path: "/"},
			{Label: "Training", Path: "/training/"},
			{Label: "Contact us", Path: "/contact-us/"},
		},
	}
}

// ParseSite decodes YAML on top of the defaults.
// PRE: data is YAML (may be empty)
// POST: Returns a validated Site; unset keys keep their default
func ParseSite(data []byte) (Site, error) {
	site := Default()
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("parse site config: %w", err)
	}
	if err := site.Validate(); err != nil {
		return Site{}, err
	}
	return site, nil
}

// LoadSite reads the site file, then applies CLUB_SITE_TITLE, CLUB_BASE_URL
// and CLUB_EMAIL overrides. A missing file is not an error.
func LoadSite(path string) (Site, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Site{}, fmt.Errorf("read site config %s: %w", path, err)
	}
	site, err := ParseSite(data)
	if err != nil {
		return Site{}, err
	}
	if v := os.Getenv("CLUB_SITE_TITLE"); v != "" {
		site.Title = v
	}
	if v := os.Getenv("CLUB_BASE_URL"); v != "" {
		site.BaseURL = v
	}
	if v := os.Getenv("CLUB_EMAIL"); v != "" {
		site.Email = v
	}
	return site, site.Validate()
}

// Validate checks the fields the server depends on.
// PRE: none
// POST: Returns nil if the site can be served
func (s Site) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("site title is required")
	}
	if _, err := mail.ParseAddress(s.Email); err != nil {
		return fmt.Errorf("site email %q: %w", s.Email, err)
	}
	for _, l := range s.Nav {
		if !strings.HasPrefix(l.Path, "/") {
			return fmt.Errorf("nav link %q must be an absolute path", l.Label)
		}
	}
	return nil
}
