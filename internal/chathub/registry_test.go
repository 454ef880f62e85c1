package chathub_test

import (
	"errors"
	"testing"

	"meetgogo/backend/internal/auth"
	"meetgogo/backend/internal/chathub"
	"meetgogo/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*chathub.Registry, *chathub.RoomManager, *MockVerifier) {
	t.Helper()
	verifier := new(MockVerifier)
	rooms := chathub.NewRoomManager()
	return chathub.NewRegistry(rooms, verifier), rooms, verifier
}

func TestRegistry_AuthenticateNoToken(t *testing.T) {
	registry, _, _ := newTestRegistry(t)

	_, err := registry.Authenticate("")

	var authErr *chathub.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "no token", authErr.Reason)
}

func TestRegistry_AuthenticateInvalidToken(t *testing.T) {
	registry, _, verifier := newTestRegistry(t)
	verifier.On("Verify", "bad-token").Return(auth.Identity{}, errors.New("token is expired"))

	_, err := registry.Authenticate("bad-token")

	var authErr *chathub.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid token", authErr.Reason)
}

func TestRegistry_AuthenticateSuccess(t *testing.T) {
	registry, _, verifier := newTestRegistry(t)
	want := auth.Identity{UserID: "user-a", UserName: "Alice"}
	verifier.On("Verify", "good-token").Return(want, nil)

	identity, err := registry.Authenticate("good-token")

	require.NoError(t, err)
	assert.Equal(t, want, identity)
}

func TestRegistry_AddAndGet(t *testing.T) {
	registry, _, _ := newTestRegistry(t)
	a := newMockClient("conn-a", "user-a", "Alice")

	registry.Add(a)

	got, ok := registry.Get("conn-a")
	require.True(t, ok)
	assert.Equal(t, "user-a", got.GetUserID())
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_UnregisterDropsRoomMembership(t *testing.T) {
	registry, rooms, _ := newTestRegistry(t)
	a := newMockClient("conn-a", "user-a", "Alice")
	b := newMockClient("conn-b", "user-b", "Bob")
	registry.Add(a)
	registry.Add(b)
	rooms.Join("event-1", a)
	rooms.Join("event-1", b)
	a.Events()
	b.Events()

	registry.Unregister("conn-a")

	_, ok := registry.Get("conn-a")
	assert.False(t, ok)
	assert.Equal(t, 1, rooms.MemberCount("event-1"))

	events := b.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventUserLeft, events[0].Type)
	assert.Equal(t, "user-a", events[0].UserID)
}

func TestRegistry_UnregisterIdempotent(t *testing.T) {
	registry, _, _ := newTestRegistry(t)
	a := newMockClient("conn-a", "user-a", "Alice")
	registry.Add(a)

	registry.Unregister("conn-a")
	registry.Unregister("conn-a")
	registry.Unregister("never-registered")

	assert.Equal(t, 0, registry.Count())
}
