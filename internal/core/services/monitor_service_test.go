package services

import (
	"context"
	"testing"

	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionMonitor_Check(t *testing.T) {
	t.Run("Healthy store", func(t *testing.T) {
		conn := &fakeConnection{store: repositories.NewMemoryStore()}
		assert.True(t, NewConnectionMonitor(conn, "").Check(context.Background()))
		assert.Equal(t, 1, conn.attempts)
	})

	t.Run("Connect fails", func(t *testing.T) {
		conn := &fakeConnection{connectErr: errStoreDown}
		assert.False(t, NewConnectionMonitor(conn, "").Check(context.Background()))
	})

	t.Run("Ping fails", func(t *testing.T) {
		conn := &fakeConnection{store: &failingStore{Store: repositories.NewMemoryStore(), failPing: true}}
		assert.False(t, NewConnectionMonitor(conn, "").Check(context.Background()))
	})
}

func TestConnectionMonitor_StartStop(t *testing.T) {
	conn := &fakeConnection{store: repositories.NewMemoryStore()}

	disabled := NewConnectionMonitor(conn, "")
	require.NoError(t, disabled.Start())
	disabled.Stop()

	monitor := NewConnectionMonitor(conn, "@every 1h")
	require.NoError(t, monitor.Start())
	monitor.Stop()

	assert.Error(t, NewConnectionMonitor(conn, "not a schedule").Start())
}
