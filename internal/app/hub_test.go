package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traitor/internal/domain"
)

func TestCreateTable(t *testing.T) {
	hub := newTestHub(t)

	table, err := hub.CreateTable()
	require.NoError(t, err)

	code := table.GetCode()
	assert.Len(t, code, DefaultTableCodeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(TableCodeChars, r), "unexpected char %q", r)
	}

	got, err := hub.GetTable(code)
	require.NoError(t, err)
	assert.Same(t, table, got)
	assert.Equal(t, domain.PhaseSetup, got.GetPhase())
	assert.Equal(t, 1, hub.GetTableCount())
}

func TestGetTableNotFound(t *testing.T) {
	hub := newTestHub(t)

	_, err := hub.GetTable("NOPE")
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestDeleteTable(t *testing.T) {
	hub := newTestHub(t)
	table, err := hub.CreateTable()
	require.NoError(t, err)
	client := &fakeClient{id: "c1"}
	table.RegisterClient(client)

	hub.DeleteTable(table.GetCode())

	assert.Equal(t, 0, hub.GetTableCount())
	assert.True(t, client.isClosed())
}

func TestTotalPlayerCount(t *testing.T) {
	hub := newTestHub(t)

	a, err := hub.CreateTable()
	require.NoError(t, err)
	b, err := hub.CreateTable()
	require.NoError(t, err)

	_, err = a.AddPlayer("Ann")
	require.NoError(t, err)
	_, err = b.AddPlayer("Bob")
	require.NoError(t, err)
	_, err = b.AddPlayer("Cid")
	require.NoError(t, err)

	assert.Equal(t, 3, hub.GetTotalPlayerCount())
}

func TestCleanupStaleTables(t *testing.T) {
	hub := newTestHub(t)

	idle, err := hub.CreateTable()
	require.NoError(t, err)
	watched, err := hub.CreateTable()
	require.NoError(t, err)
	watched.RegisterClient(&fakeClient{id: "viewer"})

	hub.cleanupStaleTables(time.Now().Add(time.Minute))
	assert.Equal(t, 2, hub.GetTableCount())

	hub.cleanupStaleTables(time.Now().Add(DefaultStaleTableTimeout + time.Minute))

	_, err = hub.GetTable(idle.GetCode())
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
	_, err = hub.GetTable(watched.GetCode())
	assert.NoError(t, err)
}

func TestHubClose(t *testing.T) {
	hub := newTestHub(t)
	table, err := hub.CreateTable()
	require.NoError(t, err)
	client := &fakeClient{id: "c1"}
	table.RegisterClient(client)

	hub.Close()
	hub.Close()

	assert.Equal(t, 0, hub.GetTableCount())
	assert.True(t, client.isClosed())
}
