// Package config owns the on-disk profile store: named bundles of connection
// and credential settings, each declaring which deployment it talks to. The
// store is read once per invocation and treated as immutable afterwards.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	cerrors "github.com/redisctl/redisctl/common/errors"
	"github.com/redisctl/redisctl/deployment"
)

const (
	// EnvProfile overrides the profile selection, between the --profile flag
	// and the configured default.
	EnvProfile = "REDISCTL_PROFILE"
	// EnvConfig overrides the config file location.
	EnvConfig = "REDISCTL_CONFIG"
)

// Profile is one named connection bundle. Exactly one credential block is
// populated, matching the declared deployment.
type Profile struct {
	Deployment string `yaml:"deployment"`

	// Cloud credentials.
	APIKey    string `yaml:"api_key,omitempty"`
	APISecret string `yaml:"api_secret,omitempty"`
	APIURL    string `yaml:"api_url,omitempty"`

	// Enterprise credentials.
	URL      string `yaml:"url,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Insecure bool   `yaml:"insecure,omitempty"`
}

// Kind returns the profile's declared deployment, or false when the profile
// does not declare one.
func (p Profile) Kind() (deployment.Kind, bool) {
	if p.Deployment == "" {
		return 0, false
	}
	k, err := deployment.ParseKind(p.Deployment)
	if err != nil {
		return 0, false
	}
	return k, true
}

type Config struct {
	Default  string             `yaml:"default,omitempty"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// Path returns the config file location: $REDISCTL_CONFIG if set, else
// ~/.config/redisctl/config.yaml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot determine config directory")
	}
	return filepath.Join(home, ".config", "redisctl", "config.yaml"), nil
}

// Load reads the profile store. A missing file is an empty store, not an
// error; the distinct "no profile configured" failure happens at selection.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{Profiles: map[string]Profile{}}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config from %s", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config from %s", path)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrapf(err, "failed to create config directory for %s", path)
	}
	content, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to serialize config")
	}
	// Profiles hold credentials; keep the file private.
	if err := os.WriteFile(path, content, 0600); err != nil {
		return errors.Wrapf(err, "failed to write config to %s", path)
	}
	return nil
}

// Select resolves the active profile. Precedence: the explicit name (the
// --profile flag), then $REDISCTL_PROFILE, then the configured default.
// Failures are ProfileUnresolvedError, with the reason distinguishing a
// store with nothing usable from a name that simply is not there.
func (c *Config) Select(name string) (string, Profile, error) {
	if name == "" {
		name = os.Getenv(EnvProfile)
	}
	if name == "" {
		name = c.Default
	}
	if name == "" {
		return "", Profile{}, &cerrors.ProfileUnresolvedError{Reason: cerrors.NoProfileConfigured}
	}
	p, ok := c.Profiles[name]
	if !ok {
		return "", Profile{}, &cerrors.ProfileUnresolvedError{Name: name, Reason: cerrors.ProfileNotFound}
	}
	return name, p, nil
}

func (c *Config) Set(name string, p Profile) {
	if c.Profiles == nil {
		c.Profiles = map[string]Profile{}
	}
	c.Profiles[name] = p
}

func (c *Config) Remove(name string) bool {
	if _, ok := c.Profiles[name]; !ok {
		return false
	}
	delete(c.Profiles, name)
	if c.Default == name {
		c.Default = ""
	}
	return true
}

// Names returns the profile names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
