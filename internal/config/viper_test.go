package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	cfg, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Synonyms.File)
}

func TestInitializeConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("CSV2OFX_LOG_LEVEL", "debug")
	t.Setenv("CSV2OFX_LOG_FORMAT", "json")
	t.Setenv("CSV2OFX_SYNONYMS_FILE", "/tmp/synonyms.yaml")

	cfg, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/synonyms.yaml", cfg.Synonyms.File)
}

func TestInitializeConfig_InvalidLevel(t *testing.T) {
	t.Setenv("CSV2OFX_LOG_LEVEL", "loudest")

	_, err := InitializeConfig()

	assert.Error(t, err)
}

func TestInitializeConfig_InvalidFormat(t *testing.T) {
	t.Setenv("CSV2OFX_LOG_FORMAT", "xml")

	_, err := InitializeConfig()

	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"
	assert.NoError(t, validateConfig(&cfg))

	cfg.Log.Format = "yaml"
	assert.Error(t, validateConfig(&cfg))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(&cfg)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestConfigureLogging_EnvLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "text")

	logger := ConfigureLogging()

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CSV2OFX_TEST_KEY", "value")

	assert.Equal(t, "value", GetEnv("CSV2OFX_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CSV2OFX_MISSING_KEY", "fallback"))
}
