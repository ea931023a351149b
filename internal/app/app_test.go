package app

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"traitor/internal/catalog"
	"traitor/internal/domain"
)

type fakeClient struct {
	id     string
	mu     sync.Mutex
	events []*domain.TableEvent
	closed bool
}

func (c *fakeClient) Send(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if event, ok := message.(*domain.TableEvent); ok {
		c.events = append(c.events, event)
	}
	return nil
}

func (c *fakeClient) GetClientID() string {
	return c.id
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) eventTypes() []domain.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]domain.EventType, 0, len(c.events))
	for _, e := range c.events {
		types = append(types, e.Type)
	}
	return types
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHub(t *testing.T) *GameHub {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	hub := NewGameHub(HubOptions{
		Settings: domain.DefaultGameSettings(),
		Random:   rand.New(rand.NewPCG(1, 2)),
	}, cat, testLogger())
	t.Cleanup(hub.Close)
	return hub
}

func eventuallyTypes(t *testing.T, c *fakeClient, want ...domain.EventType) {
	t.Helper()
	require.Eventually(t, func() bool {
		got := c.eventTypes()
		if len(got) != len(want) {
			return false
		}
		for i := range want {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}
