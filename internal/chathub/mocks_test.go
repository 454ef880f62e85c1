package chathub_test

import (
	"context"
	"sync"

	"meetgogo/backend/internal/auth"
	"meetgogo/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockVerifier is a testify double for the chathub.SessionVerifier
// interface.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(token string) (auth.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(auth.Identity), args.Error(1)
}

// MockOracle is a testify double for the chathub.ParticipationOracle
// interface.
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) ParticipationStatus(ctx context.Context, eventID, userID string) (string, error) {
	args := m.Called(ctx, eventID, userID)
	return args.String(0), args.Error(1)
}

// MockStore is a testify double for the chathub.MessageStore interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveMessage(ctx context.Context, msg *models.ChatHistory) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockReports is a testify double for the chathub.ReportSink interface.
type MockReports struct {
	mock.Mock
}

func (m *MockReports) HandleReport(ctx context.Context, report *models.MessageReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// mockClient is a plain in-memory chathub.Client. Events pushed to it land
// in a buffered channel tests drain with Events.
type mockClient struct {
	connID   string
	userID   string
	userName string

	send chan models.OutboundEvent

	mu    sync.Mutex
	rooms map[string]struct{}
}

func newMockClient(connID, userID, userName string) *mockClient {
	return newMockClientBuffered(connID, userID, userName, 32)
}

// newMockClientBuffered controls the send buffer size; a zero buffer makes
// every delivery drop, which is how tests simulate a stale connection.
func newMockClientBuffered(connID, userID, userName string, buffer int) *mockClient {
	return &mockClient{
		connID:   connID,
		userID:   userID,
		userName: userName,
		send:     make(chan models.OutboundEvent, buffer),
		rooms:    make(map[string]struct{}),
	}
}

func (c *mockClient) GetConnID() string    { return c.connID }
func (c *mockClient) GetUserID() string    { return c.userID }
func (c *mockClient) GetUserName() string  { return c.userName }
func (c *mockClient) GetUserImage() string { return "" }

func (c *mockClient) GetSendChannel() chan<- models.OutboundEvent { return c.send }

func (c *mockClient) AddRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[roomID] = struct{}{}
}

func (c *mockClient) RemoveRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, roomID)
}

func (c *mockClient) RoomIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (c *mockClient) Run()   {}
func (c *mockClient) Close() {}

// Events drains everything delivered to the client so far.
func (c *mockClient) Events() []models.OutboundEvent {
	var events []models.OutboundEvent
	for {
		select {
		case ev := <-c.send:
			events = append(events, ev)
		default:
			return events
		}
	}
}
