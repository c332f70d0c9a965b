//go:build unit

package zap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewRequiresOTelLibraryName(t *testing.T) {
	t.Parallel()

	_, _, err := New(Config{Environment: EnvironmentProduction})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTelLibraryName")
}

func TestNewRejectsInvalidEnvironment(t *testing.T) {
	t.Parallel()

	_, _, err := New(Config{Environment: Environment("banana"), OTelLibraryName: "lib-retry"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}

func TestNewAppliesEnvironmentDefaultLevel(t *testing.T) {
	t.Parallel()

	logger, level, err := New(Config{Environment: EnvironmentDevelopment, OTelLibraryName: "lib-retry"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	logger, level, err = New(Config{Environment: EnvironmentProduction, OTelLibraryName: "lib-retry"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, zapcore.InfoLevel, level.Level())
}

func TestNewHonorsExplicitLevel(t *testing.T) {
	t.Parallel()

	logger, level, err := New(Config{
		Environment:     EnvironmentProduction,
		OTelLibraryName: "lib-retry",
		Level:           "error",
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, zapcore.ErrorLevel, level.Level())
	assert.Equal(t, level.Level(), logger.Level().Level())
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	t.Parallel()

	_, _, err := New(Config{
		Environment:     EnvironmentProduction,
		OTelLibraryName: "lib-retry",
		Level:           "invalid",
	})
	require.Error(t, err)
}

func TestNewAcceptsAllEnvironments(t *testing.T) {
	t.Parallel()

	for _, env := range []Environment{
		EnvironmentProduction,
		EnvironmentDevelopment,
		EnvironmentLocal,
	} {
		logger, _, err := New(Config{Environment: env, OTelLibraryName: "lib-retry"})
		require.NoError(t, err, "environment %q", env)
		assert.NotNil(t, logger)
	}
}

func TestResolveLevelDefaults(t *testing.T) {
	t.Parallel()

	level, err := resolveLevel(Config{Environment: EnvironmentProduction, Level: ""})
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level.Level())

	level, err = resolveLevel(Config{Environment: EnvironmentLocal, Level: ""})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestBuildConfigByEnvironment(t *testing.T) {
	t.Parallel()

	dev := buildConfigByEnvironment(EnvironmentDevelopment)
	assert.Equal(t, "json", dev.Encoding)
	assert.True(t, dev.Development)

	prod := buildConfigByEnvironment(EnvironmentProduction)
	assert.Equal(t, "json", prod.Encoding)
	assert.False(t, prod.Development)
}
