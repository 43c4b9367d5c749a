// Package branding holds per-agency visual identity and brochure template
// configuration, loaded from a YAML registry file.
package branding

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doorstephq/doorstep/internal/core"
)

// TemplateType identifies a brochure layout family.
type TemplateType string

const (
	TemplateContemporary TemplateType = "contemporary"
	TemplateClassic      TemplateType = "classic"
	TemplateCountry      TemplateType = "country"
	TemplatePremium      TemplateType = "premium"
	TemplateStandard     TemplateType = "standard"
)

// ColorPalette is an agency's brochure color scheme.
type ColorPalette struct {
	Primary    string `yaml:"primary" json:"primary"`
	Secondary  string `yaml:"secondary" json:"secondary"`
	Accent     string `yaml:"accent" json:"accent"`
	Text       string `yaml:"text" json:"text"`
	Background string `yaml:"background" json:"background"`
}

// TemplateConfig describes one brochure template.
type TemplateConfig struct {
	Name        string `yaml:"name" json:"name"`
	Layout      string `yaml:"layout" json:"layout"`
	FontFamily  string `yaml:"font_family" json:"font_family"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// AgencyBranding is the complete branding configuration for one agency.
type AgencyBranding struct {
	ID              string                          `yaml:"id" json:"id"`
	Name            string                          `yaml:"name" json:"name"`
	Tone            string                          `yaml:"tone" json:"tone"`
	LogoURL         string                          `yaml:"logo_url,omitempty" json:"logo_url,omitempty"`
	Colors          ColorPalette                    `yaml:"colors" json:"colors"`
	DefaultTemplate TemplateType                    `yaml:"default_template" json:"default_template"`
	Templates       map[TemplateType]TemplateConfig `yaml:"templates" json:"templates"`
}

type registryFile struct {
	Agencies []AgencyBranding `yaml:"agencies"`
}

// Registry indexes agency branding by ID.
type Registry struct {
	agencies map[string]AgencyBranding
}

// Load reads the registry from a YAML file. An empty path returns the
// built-in registry.
func Load(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read branding registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse branding registry: %w", err)
	}

	registry := &Registry{agencies: make(map[string]AgencyBranding, len(file.Agencies))}
	for _, agency := range file.Agencies {
		id := strings.ToLower(strings.TrimSpace(agency.ID))
		if id == "" {
			return nil, fmt.Errorf("branding registry: agency %q has no id", agency.Name)
		}
		if _, exists := registry.agencies[id]; exists {
			return nil, fmt.Errorf("branding registry: duplicate agency id %q", id)
		}
		agency.ID = id
		registry.agencies[id] = agency
	}
	return registry, nil
}

// Get returns the branding for an agency ID.
func (r *Registry) Get(id string) (AgencyBranding, bool) {
	if r == nil {
		return AgencyBranding{}, false
	}
	agency, ok := r.agencies[strings.ToLower(strings.TrimSpace(id))]
	return agency, ok
}

// List returns all agencies sorted by ID.
func (r *Registry) List() []AgencyBranding {
	if r == nil {
		return nil
	}
	agencies := make([]AgencyBranding, 0, len(r.agencies))
	for _, agency := range r.agencies {
		agencies = append(agencies, agency)
	}
	sort.Slice(agencies, func(i, j int) bool { return agencies[i].ID < agencies[j].ID })
	return agencies
}

// premiumPriceThreshold is the asking price above which a property gets the
// premium template regardless of character.
const premiumPriceThreshold = 1_000_000

// SelectTemplate picks the template for a property. The agency's default
// template is used when it has no template of the selected type.
func (r *Registry) SelectTemplate(agencyID string, character core.PropertyCharacter, price int) (TemplateType, TemplateConfig, error) {
	agency, ok := r.Get(agencyID)
	if !ok {
		return "", TemplateConfig{}, fmt.Errorf("agency %q not found", agencyID)
	}

	selected := templateForCharacter(character)
	if price >= premiumPriceThreshold {
		selected = TemplatePremium
	}

	cfg, ok := agency.Templates[selected]
	if !ok {
		selected = agency.DefaultTemplate
		cfg, ok = agency.Templates[selected]
		if !ok {
			return "", TemplateConfig{}, fmt.Errorf("agency %q has no template %q", agencyID, selected)
		}
	}
	return selected, cfg, nil
}

func templateForCharacter(character core.PropertyCharacter) TemplateType {
	switch character {
	case core.CharacterLuxury:
		return TemplatePremium
	case core.CharacterPeriod:
		return TemplateClassic
	case core.CharacterRural:
		return TemplateCountry
	case core.CharacterFamily:
		return TemplateStandard
	case core.CharacterModern:
		return TemplateContemporary
	default:
		return TemplateStandard
	}
}
