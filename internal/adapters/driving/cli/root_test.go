package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBootstrap(t *testing.T, fn BootstrapFunc) {
	t.Helper()
	prev := bootstrap
	SetBootstrap(fn)
	t.Cleanup(func() {
		bootstrap = prev
		SetServices(&Services{})
		resetFlags()
		apiURL, ephemeral = "", false
	})
}

func TestInitServices_PassesGlobalFlags(t *testing.T) {
	var got Options
	withBootstrap(t, func(opts Options) (*Services, error) {
		got = opts
		return &Services{Search: &mockSearchService{}}, nil
	})

	_, err := executeCommand(t, "options", "--api-url", "http://example.test/api", "--ephemeral")

	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api", got.APIURL)
	assert.True(t, got.Ephemeral)
	assert.False(t, got.Verbose)
}

func TestInitServices_BootstrapError(t *testing.T) {
	withBootstrap(t, func(Options) (*Services, error) {
		return nil, errors.New("cannot open store")
	})

	_, err := executeCommand(t, "bookmarks")

	assert.EqualError(t, err, "cannot open store")
}

func TestInitServices_NilServices(t *testing.T) {
	withBootstrap(t, func(Options) (*Services, error) { return nil, nil })

	_, err := executeCommand(t, "bookmarks")

	assert.EqualError(t, err, "bootstrap returned no services")
}

func TestInitServices_SkipsVersion(t *testing.T) {
	called := false
	withBootstrap(t, func(Options) (*Services, error) {
		called = true
		return &Services{}, nil
	})

	_, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestSetServices(t *testing.T) {
	closed := false
	setupTestServices(t, &Services{Close: func() error { closed = true; return nil }})

	require.NotNil(t, closeServices)
	require.NoError(t, closeServices())
	assert.True(t, closed)
	assert.NotNil(t, settingsService)
	assert.Nil(t, searchService)
}
