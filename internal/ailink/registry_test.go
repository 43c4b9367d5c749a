package ailink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		DefaultProvider: "primary",
		Providers: map[string]ProviderInstanceConfig{
			"primary": {
				Enabled:    true,
				AIProvider: "anthropic",
				Roles:      []string{RoleVision, RoleCopywriter},
				Models: map[string]string{
					"default":      "claude-sonnet-4-20250514",
					RoleCopywriter: "claude-3-5-haiku-20241022",
				},
				Credentials: []CredentialConfig{
					{Enabled: true, Label: "main", APIKey: "sk-test", Priority: 1},
				},
			},
		},
		Routing: map[string]string{
			RoleVision: "primary",
		},
	}
}

func TestResolveByRouting(t *testing.T) {
	reg := NewRegistry(testConfig())

	resolved, err := reg.Resolve(RoleVision, "")
	require.NoError(t, err)
	assert.Equal(t, "primary", resolved.ProviderID)
	assert.Equal(t, "anthropic", resolved.Driver.Name())
	assert.Equal(t, "claude-sonnet-4-20250514", resolved.Model)
}

func TestResolveRoleKeyedModel(t *testing.T) {
	reg := NewRegistry(testConfig())

	resolved, err := reg.Resolve(RoleCopywriter, "")
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-20241022", resolved.Model)
}

func TestResolveModelOverride(t *testing.T) {
	reg := NewRegistry(testConfig())

	resolved, err := reg.Resolve(RoleVision, "claude-opus-4-20250514")
	require.NoError(t, err)
	assert.Equal(t, "claude-opus-4-20250514", resolved.Model)
}

func TestResolveUnknownRoutedProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Routing[RoleVision] = "missing"
	reg := NewRegistry(cfg)

	_, err := reg.Resolve(RoleVision, "")
	assert.ErrorContains(t, err, "unknown provider")
}

func TestResolveDisabledProvider(t *testing.T) {
	cfg := testConfig()
	p := cfg.Providers["primary"]
	p.Enabled = false
	cfg.Providers["primary"] = p
	reg := NewRegistry(cfg)

	_, err := reg.Resolve(RoleVision, "")
	assert.Error(t, err)
}

func TestResolveNoCredentials(t *testing.T) {
	cfg := testConfig()
	p := cfg.Providers["primary"]
	p.Credentials = nil
	cfg.Providers["primary"] = p
	reg := NewRegistry(cfg)

	_, err := reg.Resolve(RoleVision, "")
	assert.ErrorContains(t, err, "no credentials")
}

func TestResolveUnsupportedDriverType(t *testing.T) {
	cfg := testConfig()
	p := cfg.Providers["primary"]
	p.AIProvider = "acme"
	cfg.Providers["primary"] = p
	reg := NewRegistry(cfg)

	_, err := reg.Resolve(RoleVision, "")
	assert.ErrorContains(t, err, "unsupported ai_provider")
}

func TestSelectCredentialPriority(t *testing.T) {
	cfg := ProviderInstanceConfig{
		Credentials: []CredentialConfig{
			{Enabled: true, Label: "low", APIKey: "k1", Priority: 1},
			{Enabled: true, Label: "high", APIKey: "k2", Priority: 5},
		},
	}

	cred, _, err := selectCredential(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "high", cred.Label)
}

func TestSelectCredentialRoundRobin(t *testing.T) {
	cfg := ProviderInstanceConfig{
		SelectionPolicy: "round_robin",
		Credentials: []CredentialConfig{
			{Enabled: true, Label: "a", APIKey: "k1", Priority: 1},
			{Enabled: true, Label: "b", APIKey: "k2", Priority: 1},
		},
	}

	seen := map[string]int{}
	next := 0
	rr := func(string, int) int {
		idx := next
		next = (next + 1) % 2
		return idx
	}
	for i := 0; i < 4; i++ {
		cred, _, err := selectCredential(cfg, rr)
		require.NoError(t, err)
		seen[cred.Label]++
	}
	assert.Equal(t, 2, seen["a"])
	assert.Equal(t, 2, seen["b"])
}

func TestSelectCredentialDefaultLabel(t *testing.T) {
	cfg := ProviderInstanceConfig{
		DefaultCredential: "backup",
		Credentials: []CredentialConfig{
			{Enabled: true, Label: "main", APIKey: "k1", Priority: 5},
			{Enabled: true, Label: "backup", APIKey: "k2", Priority: 1},
		},
	}

	cred, _, err := selectCredential(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "backup", cred.Label)
}
