package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChrisPortman/puppet/internal/purge"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puppet.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
resources:
  - type: user
    name: deploy
    state: present
  - type: group
    name: deploy
    state: present
purge:
  user:
    enabled: true
    unless_system: true
    exclude_ids: "65534"
  group:
    enabled: true
    unless_system: 999
    only_ids:
      - 5000
      - "6000..6999"
hosts:
  - name: web01
    address: 10.0.0.5
    user: admin
`)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Len(t, cfg.Resources, 2)

	// Loose manifest types survive to the normalization layer untouched.
	userBlock := cfg.Purge["user"]
	assert.True(t, userBlock.Enabled)
	assert.Equal(t, true, userBlock.UnlessSystem)
	assert.Equal(t, "65534", userBlock.ExcludeIDs)

	groupBlock := cfg.Purge["group"]
	assert.Equal(t, 999, groupBlock.UnlessSystem)
	assert.IsType(t, []any{}, groupBlock.OnlyIDs)

	// Host defaults
	assert.Equal(t, 22, cfg.Hosts[0].Port)
}

func TestLoadConfig_PurgeBlocksFeedPolicies(t *testing.T) {
	path := writeConfig(t, `
purge:
  group:
    enabled: true
    unless_system: 500
    exclude_ids: "1000"
`)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)

	pc := cfg.Purge["group"]
	policy, err := purge.NewPolicy(purge.KindGroup, purge.Options{
		UnlessSystem: pc.UnlessSystem,
		OnlyIDs:      pc.OnlyIDs,
		ExcludeIDs:   pc.ExcludeIDs,
	}, purge.DefaultProtected(purge.KindGroup))
	assert.NoError(t, err)
	assert.True(t, policy.ExcludeIDs.Contains(1000))
}

func TestLoadConfig_UnknownKind(t *testing.T) {
	path := writeConfig(t, `
purge:
  package:
    enabled: true
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity kind")
}

func TestLoadConfig_InvalidResource(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown type", "resources:\n  - type: firewall\n    name: web\n"},
		{"invalid name", "resources:\n  - type: user\n    name: \"Bad Name!\"\n"},
		{"invalid state", "resources:\n  - type: user\n    name: deploy\n    state: paused\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	t.Setenv("PUPPET_TEST_ADDR", "192.168.1.20")
	path := writeConfig(t, `
hosts:
  - name: web01
    address: ${PUPPET_TEST_ADDR}
    user: admin
`)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "192.168.1.20", cfg.Hosts[0].Address)
}

func TestCatalog(t *testing.T) {
	cfg := &Config{
		Resources: []ResourceConfig{
			{Type: "user", Name: "deploy", State: "present"},
			{Type: "user", Name: "legacy", State: "absent"},
			{Type: "group", Name: "ops"},
		},
	}

	cat := cfg.Declared()

	assert.True(t, cat.IsDeclared(purge.KindUser, "deploy"))
	// Absent entries are still under management.
	assert.True(t, cat.IsDeclared(purge.KindUser, "legacy"))
	assert.True(t, cat.IsDeclared(purge.KindGroup, "ops"))

	// Kinds do not bleed into each other.
	assert.False(t, cat.IsDeclared(purge.KindGroup, "deploy"))
	assert.False(t, cat.IsDeclared(purge.KindUser, "ops"))
	assert.False(t, cat.IsDeclared(purge.KindUser, "stranger"))
}

func TestFindHost(t *testing.T) {
	cfg := &Config{Hosts: []Host{{Name: "web01"}, {Name: "db01"}}}

	h, err := cfg.FindHost("db01")
	assert.NoError(t, err)
	assert.Equal(t, "db01", h.Name)

	_, err = cfg.FindHost("missing")
	assert.Error(t, err)
}
