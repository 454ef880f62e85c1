package chathub

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"unicode/utf8"

	"meetgogo/backend/internal/models"
)

// Client-facing validation messages. Tests pin these exactly; the client UI
// renders them verbatim.
const (
	msgMustJoinChat     = "Must join event to access chat"
	msgMustJoinSend     = "Must join event to send messages"
	msgMustJoinReport   = "Must join event to report messages"
	msgEmptyMessage     = "Message cannot be empty"
	msgMessageTooLong   = "Message too long"
	msgSendFailed       = "Failed to send message"
	msgReportFailed     = "Failed to submit report"
	msgInvalidEvent     = "Invalid event"
	msgUnknownEventType = "Unknown event type"
)

// maxMessageLength is the inclusive upper bound on the trimmed rune count of
// a chat message.
const maxMessageLength = 1000

// ParticipationOracle reports a user's relationship to an event. The
// gateway consults it on every join and nowhere else; membership is not
// re-verified per message.
type ParticipationOracle interface {
	ParticipationStatus(ctx context.Context, eventID, userID string) (string, error)
}

// MessageStore durably persists chat messages, assigning id and timestamp.
type MessageStore interface {
	SaveMessage(ctx context.Context, msg *models.ChatHistory) error
}

// ReportSink receives message reports from room members.
type ReportSink interface {
	HandleReport(ctx context.Context, report *models.MessageReport) error
}

// Gateway validates every inbound frame and delegates to the room manager
// and the external collaborators. All dispatch happens in HandleEvent so
// validation order and side effects are auditable in one place.
type Gateway struct {
	Registry *Registry
	Rooms    *RoomManager
	Oracle   ParticipationOracle
	Store    MessageStore
	Reports  ReportSink
}

func NewGateway(registry *Registry, rooms *RoomManager, oracle ParticipationOracle, store MessageStore, reports ReportSink) *Gateway {
	return &Gateway{
		Registry: registry,
		Rooms:    rooms,
		Oracle:   oracle,
		Store:    store,
		Reports:  reports,
	}
}

// HandleEvent processes one inbound frame from an authenticated connection.
// Validation failures answer with an "error" event and keep the connection
// open; nothing here may take the process down on bad input.
func (g *Gateway) HandleEvent(c Client, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC handling event from connection %s: %v", c.GetConnID(), r)
			g.sendError(c, msgInvalidEvent)
		}
	}()

	var ev models.InboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Printf("malformed frame from connection %s: %v", c.GetConnID(), err)
		g.sendError(c, msgInvalidEvent)
		return
	}
	if ev.EventID == "" {
		g.sendError(c, msgInvalidEvent)
		return
	}

	switch ev.Type {
	case models.EventJoin:
		g.handleJoin(c, ev)
	case models.EventLeave:
		g.Rooms.Leave(ev.EventID, c)
	case models.EventSendMessage:
		g.handleSendMessage(c, ev)
	case models.EventStartTyping:
		g.handleTyping(c, ev, true)
	case models.EventStopTyping:
		g.handleTyping(c, ev, false)
	case models.EventReport:
		g.handleReport(c, ev)
	default:
		g.sendError(c, msgUnknownEventType)
	}
}

// Disconnect handles the transport's disconnect signal.
func (g *Gateway) Disconnect(c Client) {
	g.Registry.Unregister(c.GetConnID())
}

func (g *Gateway) handleJoin(c Client, ev models.InboundEvent) {
	status, err := g.Oracle.ParticipationStatus(context.Background(), ev.EventID, c.GetUserID())
	if err != nil {
		// Upstream failure, not bad input; the client sees the same
		// rejection either way.
		log.Printf("ERROR: participation lookup failed for event %s user %s: %v", ev.EventID, c.GetUserID(), err)
		g.sendError(c, msgMustJoinChat)
		return
	}
	if status == models.ParticipationNone {
		g.sendError(c, msgMustJoinChat)
		return
	}
	g.Rooms.Join(ev.EventID, c)
}

func (g *Gateway) handleSendMessage(c Client, ev models.InboundEvent) {
	// Membership before content: the membership check is a security
	// boundary and must fire before any content handling or persistence.
	if !g.Rooms.IsMember(ev.EventID, c.GetConnID()) {
		g.sendError(c, msgMustJoinSend)
		return
	}

	content := strings.TrimSpace(ev.Content)
	if content == "" {
		g.sendError(c, msgEmptyMessage)
		return
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		g.sendError(c, msgMessageTooLong)
		return
	}

	msg := &models.ChatHistory{
		EventID:     ev.EventID,
		SenderID:    c.GetUserID(),
		SenderName:  c.GetUserName(),
		SenderImage: c.GetUserImage(),
		Content:     content,
	}
	if err := g.Store.SaveMessage(context.Background(), msg); err != nil {
		log.Printf("ERROR: message store failed for event %s user %s: %v", ev.EventID, c.GetUserID(), err)
		g.sendError(c, msgSendFailed)
		return
	}

	// Echoed to the sender too, so the UI reconciles its optimistic copy
	// with the canonical stored record.
	g.Rooms.Broadcast(ev.EventID, models.OutboundEvent{
		Type:      models.EventNewMessage,
		ID:        msg.ID,
		EventID:   ev.EventID,
		UserID:    msg.SenderID,
		UserName:  msg.SenderName,
		UserImage: msg.SenderImage,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}, "")
}

func (g *Gateway) handleTyping(c Client, ev models.InboundEvent, isTyping bool) {
	// Typing is low-stakes: non-members are ignored without an error event.
	if !g.Rooms.IsMember(ev.EventID, c.GetConnID()) {
		return
	}
	g.Rooms.SetTyping(ev.EventID, c.GetUserID(), c.GetUserName(), isTyping, c.GetConnID())
}

func (g *Gateway) handleReport(c Client, ev models.InboundEvent) {
	if !g.Rooms.IsMember(ev.EventID, c.GetConnID()) {
		g.sendError(c, msgMustJoinReport)
		return
	}
	report := &models.MessageReport{
		EventID:    ev.EventID,
		MessageID:  ev.MessageID,
		ReporterID: c.GetUserID(),
		Reason:     ev.Reason,
	}
	if err := g.Reports.HandleReport(context.Background(), report); err != nil {
		log.Printf("ERROR: report handling failed for event %s user %s: %v", ev.EventID, c.GetUserID(), err)
		g.sendError(c, msgReportFailed)
	}
}

func (g *Gateway) sendError(c Client, message string) {
	trySend(c, models.OutboundEvent{Type: models.EventError, Message: message})
}
