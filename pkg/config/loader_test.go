package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohq/portal/pkg/config"
)

type testConfig struct {
	Name    string        `env:"CONFIG_TEST_NAME" envDefault:"portal"`
	Window  time.Duration `env:"CONFIG_TEST_WINDOW" envDefault:"60s"`
	Limit   int           `env:"CONFIG_TEST_LIMIT" envDefault:"100"`
	Enabled bool          `env:"CONFIG_TEST_ENABLED" envDefault:"true"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "portal", cfg.Name)
		assert.Equal(t, 60*time.Second, cfg.Window)
		assert.Equal(t, 100, cfg.Limit)
		assert.True(t, cfg.Enabled)
	})

	t.Run("returns cached value on repeated load", func(t *testing.T) {
		var first, second testConfig
		require.NoError(t, config.Load(&first))

		// Environment changes after the first load must not leak in
		t.Setenv("CONFIG_TEST_LIMIT", "5")
		require.NoError(t, config.Load(&second))

		assert.Equal(t, first, second)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	assert.NotPanics(t, func() {
		var cfg testConfig
		config.MustLoad(&cfg)
	})
}

type overrideConfig struct {
	CookieName string `env:"CONFIG_TEST_COOKIE" envDefault:"sid"`
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_TEST_COOKIE", "portal_session")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "portal_session", cfg.CookieName)
}
