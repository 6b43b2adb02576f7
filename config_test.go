package smartreply_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sr "github.com/smartreplyhq/smartreply"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smartreply.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, "base_url: https://api.example.com/api\n")

	cfg, err := sr.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api", cfg.BaseURL)
	assert.Equal(t, sr.DefaultTimeoutMS, cfg.TimeoutMS)
	assert.Equal(t, sr.DefaultMaxCalls, cfg.MaxCalls)
	assert.Equal(t, sr.DefaultWindow, cfg.Window)
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	t.Setenv("SMARTREPLY_TEST_URL", "https://expanded.example.com/api")
	path := writeConfig(t, "base_url: ${SMARTREPLY_TEST_URL}\ntimeout_ms: 5000\n")

	cfg, err := sr.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://expanded.example.com/api", cfg.BaseURL)
	assert.Equal(t, 5000, cfg.TimeoutMS)
}

func TestLoadConfig_MissingBaseURL(t *testing.T) {
	path := writeConfig(t, "timeout_ms: 5000\n")

	_, err := sr.LoadConfig(path)
	assert.ErrorContains(t, err, "base_url")
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, sr.Config{}.Validate())
	assert.Error(t, sr.Config{BaseURL: "x", TimeoutMS: -1}.Validate())
	assert.Error(t, sr.Config{BaseURL: "x", MaxCalls: -1}.Validate())
	assert.NoError(t, sr.Config{BaseURL: "x"}.Validate())
}

func TestConfigTimeout(t *testing.T) {
	assert.Equal(t, int64(90000), sr.Config{}.Timeout().Milliseconds())
	assert.Equal(t, int64(5000), sr.Config{TimeoutMS: 5000}.Timeout().Milliseconds())
}
