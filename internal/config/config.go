package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ChrisPortman/puppet/internal/purge"
	"github.com/ChrisPortman/puppet/internal/utils"
	"github.com/ChrisPortman/puppet/internal/vault"
)

// Config represents the root structure of puppet.yaml.
type Config struct {
	Vars      map[string]string      `yaml:"vars"`      // Global variables
	Resources []ResourceConfig       `yaml:"resources"` // Declared (managed) entries
	Purge     map[string]PurgeConfig `yaml:"purge"`     // Per-kind purge blocks, keyed "user"/"group"
	Hosts     []Host                 `yaml:"hosts"`     // Remote hosts (Optional)
}

// ResourceConfig declares one managed entry. A declared entry - whatever
// its target state - is under management and never a purge candidate.
type ResourceConfig struct {
	Type   string         `yaml:"type"`
	Name   string         `yaml:"name"`
	State  string         `yaml:"state"` // present, absent
	Params map[string]any `yaml:"params"`
}

// PurgeConfig is the raw per-kind purge block. UnlessSystem and the id
// lists keep their loose manifest types (int, bool, string, sequence);
// purge.NewPolicy normalizes them.
type PurgeConfig struct {
	Enabled      bool   `yaml:"enabled"`
	UnlessSystem any    `yaml:"unless_system"`
	OnlyIDs      any    `yaml:"only_ids"`
	ExcludeIDs   any    `yaml:"exclude_ids"`
	When         string `yaml:"when"` // Conditional purge logic
}

// Host holds connection information for a remote host.
type Host struct {
	Name           string `yaml:"name"`
	Address        string `yaml:"address"`
	User           string `yaml:"user"`
	Port           int    `yaml:"port"`
	SSHKeyPath     string `yaml:"ssh_key_path"`
	BecomeMethod   string `yaml:"become_method"`   // sudo, su
	BecomePassword string `yaml:"become_password"` // Plain or vault:... (Recommended to come from Vault)
}

// LoadConfig reads the YAML file at the specified path and converts it into a Config struct.
func LoadConfig(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// If .env exists next to the config, load it so ${VAR} expansion works.
	baseDir := filepath.Dir(absPath)
	envPath := filepath.Join(baseDir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if loadErr := godotenv.Load(envPath); loadErr != nil {
			fmt.Printf("Warning: Failed to load .env file: %v\n", loadErr)
		}
	} else {
		// godotenv.Load() without params searches the working dir.
		_ = godotenv.Load()
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("file read error (%s): %w", absPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("yaml parse error (%s): %w", absPath, err)
	}

	expandConfig(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Host defaults
	for i := range cfg.Hosts {
		if cfg.Hosts[i].Port == 0 {
			cfg.Hosts[i].Port = 22
		}
	}

	return &cfg, nil
}

// expandConfig performs environment-variable expansion on all string values.
func expandConfig(cfg *Config) {
	for k, v := range cfg.Vars {
		cfg.Vars[k] = os.ExpandEnv(v)
	}
	for i := range cfg.Resources {
		cfg.Resources[i].Name = os.ExpandEnv(cfg.Resources[i].Name)
	}
	for i := range cfg.Hosts {
		cfg.Hosts[i].Address = os.ExpandEnv(cfg.Hosts[i].Address)
		cfg.Hosts[i].User = os.ExpandEnv(cfg.Hosts[i].User)
		cfg.Hosts[i].SSHKeyPath = os.ExpandEnv(cfg.Hosts[i].SSHKeyPath)
	}
}

// Validate checks the declared entries and purge blocks. Configuration
// errors are fatal to the run's setup.
func (c *Config) Validate() error {
	for _, r := range c.Resources {
		if !utils.IsOneOf(r.Type, "user", "group") {
			return fmt.Errorf("[%s] unknown resource type: %s", r.Name, r.Type)
		}
		if !utils.IsValidName(r.Name) {
			return fmt.Errorf("invalid resource name: %q", r.Name)
		}
		if r.State != "" && !utils.IsOneOf(r.State, "present", "absent") {
			return fmt.Errorf("[%s] invalid state: %s", r.Name, r.State)
		}
	}
	for kind := range c.Purge {
		if !purge.Kind(kind).Valid() {
			return fmt.Errorf("purge: unknown entity kind: %s", kind)
		}
	}
	return nil
}

// FindHost looks up a host entry by name.
func (c *Config) FindHost(name string) (*Host, error) {
	for i := range c.Hosts {
		if c.Hosts[i].Name == name {
			return &c.Hosts[i], nil
		}
	}
	return nil, fmt.Errorf("host %q not found in configuration", name)
}

// Password returns the host's become password, decrypting vaulted values
// with the identity at keyPath.
func (h *Host) Password(keyPath string) (string, error) {
	if !vault.IsVaulted(h.BecomePassword) {
		return h.BecomePassword, nil
	}
	return vault.Decrypt(h.BecomePassword, keyPath)
}
