package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "3.13", cfg.TargetVersion)
	assert.False(t, cfg.Spans)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "pylower.yaml")
	cfgContent := `target_version: "3.11"
spans: true
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "3.11", cfg.TargetVersion)
	assert.True(t, cfg.Spans)
	assert.Equal(t, cfgPath, FileUsed())
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "pylower.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`target_version: "3.11"`), 0600))

	t.Setenv("PYLOWER_TARGET_VERSION", "3.12")

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "3.12", cfg.TargetVersion, "env var should override config file")
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("PYLOWER_TARGET_VERSION", "3.12")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target-version", "", "target language version")
	require.NoError(t, flags.Set("target-version", "3.13"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "3.13", cfg.TargetVersion, "flag value should override env var")
}

func TestUnsetFlagFallsBackToEnv(t *testing.T) {
	t.Setenv("PYLOWER_TARGET_VERSION", "3.12")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target-version", "", "target language version")
	// Not set, so Changed is false.

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "3.12", cfg.TargetVersion, "env var should be used when flag is not set")
}

func TestFindConfigFile(t *testing.T) {
	assert.Equal(t, "explicit.yaml", findConfigFile("explicit.yaml"))

	tmpDir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(cwd) }()

	assert.Equal(t, "", findConfigFile(""))

	require.NoError(t, os.WriteFile("pylower.yml", []byte("spans: true"), 0600))
	assert.Equal(t, "pylower.yml", findConfigFile(""))

	require.NoError(t, os.WriteFile("pylower.yaml", []byte("spans: true"), 0600))
	assert.Equal(t, "pylower.yaml", findConfigFile(""), "yaml should win over yml")
}
