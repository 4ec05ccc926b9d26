package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t, &Services{})

	out, err := executeCommand(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "api.url")
	assert.Contains(t, out, domain.DefaultAPIURL)
	assert.Contains(t, out, "(disabled)")
}

func TestSettingsCmd_Get(t *testing.T) {
	setupTestServices(t, &Services{})

	out, err := executeCommand(t, "settings", "get", "search.page_size")

	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestSettingsCmd_GetUnknown(t *testing.T) {
	setupTestServices(t, &Services{})

	_, err := executeCommand(t, "settings", "get", "nope")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "nope"`)
	assert.Contains(t, err.Error(), "api.url")
}

func TestSettingsCmd_Set(t *testing.T) {
	setupTestServices(t, &Services{})

	out, err := executeCommand(t, "settings", "set", "api.timeout", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "api.timeout = 30")

	out, err = executeCommand(t, "settings", "get", "api.timeout")
	require.NoError(t, err)
	assert.Equal(t, "30s\n", out)
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	setupTestServices(t, &Services{})

	_, err := executeCommand(t, "settings", "set", "search.page_size", "15")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	SetServices(&Services{})
	t.Cleanup(resetFlags)

	_, err := executeCommand(t, "settings", "show")

	assert.EqualError(t, err, "settings service not configured")
}
