package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meetgogo/backend/internal/api/handler"
	"meetgogo/backend/internal/auth"
	"meetgogo/backend/internal/chathub"
	"meetgogo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubStorage satisfies storage.Storage with canned behavior; handler tests
// only exercise a few of its methods.
type stubStorage struct {
	savedUsers     []*models.User
	events         map[string]*models.Event
	history        map[string][]models.ChatHistory
	participations map[string]string
}

func newStubStorage() *stubStorage {
	return &stubStorage{
		events:         make(map[string]*models.Event),
		history:        make(map[string][]models.ChatHistory),
		participations: make(map[string]string),
	}
}

func (s *stubStorage) SaveUser(ctx context.Context, user *models.User) error {
	s.savedUsers = append(s.savedUsers, user)
	return nil
}

func (s *stubStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStorage) SaveEvent(ctx context.Context, event *models.Event) error {
	s.events[event.ID] = event
	return nil
}

func (s *stubStorage) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	if ev, ok := s.events[id]; ok {
		return ev, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStorage) SetParticipation(ctx context.Context, eventID, userID, status string) error {
	s.participations[eventID+":"+userID] = status
	return nil
}

func (s *stubStorage) ParticipationStatus(ctx context.Context, eventID, userID string) (string, error) {
	if status, ok := s.participations[eventID+":"+userID]; ok {
		return status, nil
	}
	return models.ParticipationNone, nil
}

func (s *stubStorage) SaveMessage(ctx context.Context, msg *models.ChatHistory) error {
	s.history[msg.EventID] = append(s.history[msg.EventID], *msg)
	return nil
}

func (s *stubStorage) GetChatHistory(ctx context.Context, eventID string, limit int) ([]models.ChatHistory, error) {
	return s.history[eventID], nil
}

func (s *stubStorage) SaveReport(ctx context.Context, report *models.MessageReport) error {
	return nil
}

func (s *stubStorage) GetOpenReports(ctx context.Context) ([]models.MessageReport, error) {
	return nil, nil
}

func (s *stubStorage) ResolveReport(ctx context.Context, id uint) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *handler.Handler, *stubStorage, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := newStubStorage()
	authSvc := auth.NewService("test-secret")
	rooms := chathub.NewRoomManager()
	registry := chathub.NewRegistry(rooms, authSvc)
	gateway := chathub.NewGateway(registry, rooms, s, s, nil)
	h := handler.NewHandler(gateway, registry, s, authSvc, 50)

	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.POST("/token", h.CreateToken)
	r.GET("/ws", h.ServeWebSocket)
	r.GET("/events/:id/messages", h.GetChatHistory)
	r.PUT("/events/:id/participation", h.SetParticipation)
	return r, h, s, authSvc
}

func TestHealthzReportsReadiness(t *testing.T) {
	r, h, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	h.SetReady()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTokenIssuesVerifiableToken(t *testing.T) {
	r, _, s, authSvc := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	identity, err := authSvc.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, identity.UserID)
	assert.Equal(t, "Alice", identity.UserName)
	require.Len(t, s.savedUsers, 1)
}

func TestCreateTokenRequiresName(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeWebSocketRejectsMissingToken(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token")
}

func TestServeWebSocketRejectsInvalidToken(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token=garbage", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestGetChatHistoryUnknownEvent(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/missing/messages", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetParticipationRoundTrip(t *testing.T) {
	r, _, s, authSvc := newTestRouter(t)
	require.NoError(t, s.SaveEvent(context.Background(), &models.Event{ID: "event-1", Title: "Picnic"}))

	token, err := authSvc.Token(auth.Identity{UserID: "user-1", UserName: "Alice"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/events/event-1/participation", strings.NewReader(`{"status":"attending"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	status, err := s.ParticipationStatus(context.Background(), "event-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.ParticipationAttending, status)
}

func TestSetParticipationRejectsBadStatus(t *testing.T) {
	r, _, s, authSvc := newTestRouter(t)
	require.NoError(t, s.SaveEvent(context.Background(), &models.Event{ID: "event-1", Title: "Picnic"}))

	token, err := authSvc.Token(auth.Identity{UserID: "user-1", UserName: "Alice"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/events/event-1/participation", strings.NewReader(`{"status":"maybe"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
