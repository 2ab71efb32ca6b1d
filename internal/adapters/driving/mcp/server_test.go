package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingEngine)
	})

	t.Run("missing engine returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingEngine)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	ports := newTestPorts()
	assert.NoError(t, ports.Validate())

	ports.Reports = &mockReportService{}
	assert.NoError(t, ports.Validate())

	noSettings := newTestPorts()
	noSettings.Settings = nil
	assert.ErrorIs(t, noSettings.Validate(), ErrMissingSettings)

	noAggregator := newTestPorts()
	noAggregator.Aggregator = nil
	assert.ErrorIs(t, noAggregator.Validate(), ErrMissingAggregator)
}
