package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payoff/core/locale"
	"payoff/core/types"
	"payoff/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultOptions(), opts)
	assert.Equal(t, locale.Japanese, cfg.Locale())
	assert.Equal(t, types.CurrencyJPY, cfg.Currency())
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
calculation:
  mode: per-use
  banding: absolute
output:
  locale: en
  currency: usd
server:
  addr: ":9090"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, types.Options{Mode: types.ModePerUse, Banding: types.BandingAbsolute}, opts)
	assert.Equal(t, locale.English, cfg.Locale())
	assert.Equal(t, types.CurrencyUSD, cfg.Currency())
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Output.ShowBreakdown, "unset keys keep their defaults")
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PAYOFF_CALCULATION_MODE", "per-hour")
	t.Setenv("PAYOFF_SERVER_METRICS_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "per-hour", cfg.Calculation.Mode)
	assert.False(t, cfg.Server.MetricsEnabled)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAYOFF_OUTPUT_LOCALE=en\n"), 0644))
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("PAYOFF_OUTPUT_LOCALE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, locale.English, cfg.Locale())
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("PAYOFF_CALCULATION_MODE", "per-fortnight")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Output.Locale = "en"
	cfg.Calculation.Banding = "absolute"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
