package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	cerrors "github.com/redisctl/redisctl/common/errors"
	"github.com/redisctl/redisctl/deployment"
)

func testConfig() *Config {
	return &Config{
		Default: "prod",
		Profiles: map[string]Profile{
			"prod": {Deployment: "cloud", APIKey: "k", APISecret: "s"},
			"lab":  {Deployment: "enterprise", URL: "https://cluster:9443", Username: "admin", Password: "pw", Insecure: true},
			"bare": {},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := testConfig().SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "prod", loaded.Default)
	assert.Equal(t, "cloud", loaded.Profiles["prod"].Deployment)
	assert.Equal(t, "https://cluster:9443", loaded.Profiles["lab"].URL)
	assert.True(t, loaded.Profiles["lab"].Insecure)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected the credentials file to be private, got %v", info.Mode().Perm())
	}
}

func TestLoadMissingFileIsEmptyStore(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Profiles) != 0 {
		t.Errorf("Expected an empty store, got %d profiles", len(cfg.Profiles))
	}
}

func TestSelect_Precedence(t *testing.T) {
	cfg := testConfig()

	// Explicit name wins over everything.
	t.Setenv(EnvProfile, "lab")
	name, _, err := cfg.Select("prod")
	assert.NoError(t, err)
	assert.Equal(t, "prod", name)

	// Env beats the configured default.
	name, _, err = cfg.Select("")
	assert.NoError(t, err)
	assert.Equal(t, "lab", name)

	// Default is the fallback.
	t.Setenv(EnvProfile, "")
	name, _, err = cfg.Select("")
	assert.NoError(t, err)
	assert.Equal(t, "prod", name)
}

// The two unresolved-profile flavors stay distinguishable: an empty store is
// not the same failure as a name that does not exist.
func TestSelect_UnresolvedFlavors(t *testing.T) {
	t.Setenv(EnvProfile, "")

	empty := &Config{Profiles: map[string]Profile{}}
	_, _, err := empty.Select("")
	unresolved, ok := err.(*cerrors.ProfileUnresolvedError)
	if !ok {
		t.Fatalf("Expected ProfileUnresolvedError, got %T: %v", err, err)
	}
	assert.Equal(t, cerrors.NoProfileConfigured, unresolved.Reason)

	_, _, err = testConfig().Select("missing")
	unresolved, ok = err.(*cerrors.ProfileUnresolvedError)
	if !ok {
		t.Fatalf("Expected ProfileUnresolvedError, got %T: %v", err, err)
	}
	assert.Equal(t, cerrors.ProfileNotFound, unresolved.Reason)
	assert.Equal(t, "missing", unresolved.Name)
}

func TestProfileKind(t *testing.T) {
	cfg := testConfig()

	k, ok := cfg.Profiles["prod"].Kind()
	assert.True(t, ok)
	assert.Equal(t, deployment.Cloud, k)

	k, ok = cfg.Profiles["lab"].Kind()
	assert.True(t, ok)
	assert.Equal(t, deployment.Enterprise, k)

	// A profile without a declared deployment yields no kind; routing then
	// depends entirely on an explicit directive.
	_, ok = cfg.Profiles["bare"].Kind()
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	cfg := testConfig()
	assert.True(t, cfg.Remove("prod"))
	assert.False(t, cfg.Remove("prod"))
	assert.Equal(t, "", cfg.Default, "removing the default profile clears the default")
	assert.Equal(t, []string{"bare", "lab"}, cfg.Names())
}
