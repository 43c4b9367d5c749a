package branding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doorstephq/doorstep/internal/core"
)

const testRegistry = `
agencies:
  - id: Acme
    name: Acme Estates
    tone: punchy
    colors:
      primary: "#FF0000"
      background: "#FFFFFF"
    default_template: standard
    templates:
      standard:
        name: Standard
        layout: two_column
        font_family: Arial
      premium:
        name: Premium
        layout: magazine
        font_family: Georgia
`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agencies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	registry, err := Load(writeRegistry(t, testRegistry))
	require.NoError(t, err)

	agency, ok := registry.Get("acme")
	require.True(t, ok, "agency IDs are case-insensitive")
	assert.Equal(t, "Acme Estates", agency.Name)
	assert.Equal(t, "punchy", agency.Tone)
	assert.Equal(t, "#FF0000", agency.Colors.Primary)
	assert.Len(t, agency.Templates, 2)
}

func TestLoadEmptyPathUsesBuiltins(t *testing.T) {
	registry, err := Load("")
	require.NoError(t, err)

	_, ok := registry.Get("doorstep")
	assert.True(t, ok)
	_, ok = registry.Get("savills")
	assert.True(t, ok)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	_, err := Load(writeRegistry(t, `
agencies:
  - id: acme
    name: Acme
  - id: ACME
    name: Acme Again
`))
	assert.ErrorContains(t, err, "duplicate agency id")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestListSorted(t *testing.T) {
	registry := Default()
	agencies := registry.List()
	require.Len(t, agencies, 2)
	assert.Equal(t, "doorstep", agencies[0].ID)
	assert.Equal(t, "savills", agencies[1].ID)
}

func TestSelectTemplateByCharacter(t *testing.T) {
	registry := Default()

	cases := []struct {
		character core.PropertyCharacter
		want      TemplateType
	}{
		{core.CharacterLuxury, TemplatePremium},
		{core.CharacterPeriod, TemplateClassic},
		{core.CharacterRural, TemplateCountry},
		{core.CharacterModern, TemplateContemporary},
	}
	for _, tc := range cases {
		selected, cfg, err := registry.SelectTemplate("savills", tc.character, 500_000)
		require.NoError(t, err)
		if _, hasWanted := registry.agencies["savills"].Templates[tc.want]; hasWanted {
			assert.Equal(t, tc.want, selected, "character %s", tc.character)
		} else {
			assert.Equal(t, TemplatePremium, selected, "falls back to agency default for %s", tc.character)
		}
		assert.NotEmpty(t, cfg.Layout)
	}
}

func TestSelectTemplateHighPriceForcesPremium(t *testing.T) {
	selected, _, err := Default().SelectTemplate("doorstep", core.CharacterFamily, 1_250_000)
	require.NoError(t, err)
	assert.Equal(t, TemplatePremium, selected)
}

func TestSelectTemplateFallsBackToDefault(t *testing.T) {
	registry, err := Load(writeRegistry(t, testRegistry))
	require.NoError(t, err)

	// Acme has no classic template; a period property gets its default.
	selected, cfg, err := registry.SelectTemplate("acme", core.CharacterPeriod, 400_000)
	require.NoError(t, err)
	assert.Equal(t, TemplateStandard, selected)
	assert.Equal(t, "two_column", cfg.Layout)
}

func TestSelectTemplateUnknownAgency(t *testing.T) {
	_, _, err := Default().SelectTemplate("nobody", core.CharacterModern, 0)
	assert.ErrorContains(t, err, "not found")
}
