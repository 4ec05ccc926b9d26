package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Session: &mockSessionService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing session", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSessionService)
	})

	t.Run("required ports only", func(t *testing.T) {
		assert.NoError(t, newTestPorts().Validate())
	})

	t.Run("all ports", func(t *testing.T) {
		ports := newTestPorts()
		ports.Compatibility = &mockCompatibilityViewer{}
		ports.Recommendations = &mockRecommendationService{}
		ports.Bookmarks = &mockBookmarkService{}
		assert.NoError(t, ports.Validate())
	})
}
