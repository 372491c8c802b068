package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Environment)
	assert.Equal(t, uint64(64), cfg.NumFrames)
	assert.Equal(t, 2, cfg.K)
	assert.Equal(t, 14, cfg.HLLBits)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadMissingEnvFileIsNotAnError(t *testing.T) {
	_, err := Load("/nonexistent/path/to/.env")
	assert.NoError(t, err)
}

func TestEnvironmentValidate(t *testing.T) {
	assert.NoError(t, EnvDev.Validate())
	assert.NoError(t, EnvProd.Validate())
	assert.Error(t, Environment("staging").Validate())
}

func TestLoadFromEnvVars(t *testing.T) {
	t.Setenv("BUSTUB_NUM_FRAMES", "128")
	t.Setenv("BUSTUB_ENVIRONMENT", "prod")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(128), cfg.NumFrames)
	assert.Equal(t, EnvProd, cfg.Environment)
}
