package chathub

import (
	"sync"
	"time"

	"meetgogo/backend/internal/models"

	"github.com/samber/lo"
)

// room holds the transient state of one event's chat: the member
// connections and who is currently typing. It carries no durable data and
// is dropped as soon as the last member leaves.
type room struct {
	mu      sync.Mutex
	members map[string]Client    // keyed by connection id
	typing  map[string]time.Time // user id -> last typing signal
	// closed marks a room removed from the manager's table; a joiner that
	// raced the removal must retry against a fresh room.
	closed bool
}

// RoomManager owns every active room, keyed by event id. Rooms are created
// lazily on first join. Mutations of a room's state are serialized through
// that room's own mutex and hold it across the fan-out, so broadcast order
// within a room matches the order mutations were accepted in. No ordering
// holds across rooms.
//
// The manager never consults the participation oracle; callers confirm
// participation before joining. That keeps the dependency direction one-way.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[string]*room)}
}

func (m *RoomManager) get(eventID string) (*room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rm, ok := m.rooms[eventID]
	return rm, ok
}

func (m *RoomManager) getOrCreate(eventID string) *room {
	m.mu.Lock()
	defer m.mu.Unlock()
	rm, ok := m.rooms[eventID]
	if !ok {
		rm = &room{
			members: make(map[string]Client),
			typing:  make(map[string]time.Time),
		}
		m.rooms[eventID] = rm
	}
	return rm
}

// Join adds the connection to the event's room and broadcasts "user-joined"
// to every member, the joiner included, so the client gets a confirmation.
func (m *RoomManager) Join(eventID string, c Client) {
	for {
		rm := m.getOrCreate(eventID)
		rm.mu.Lock()
		if rm.closed {
			// Lost a race against the last member leaving; the table
			// entry is gone, take a fresh room.
			rm.mu.Unlock()
			continue
		}
		rm.members[c.GetConnID()] = c
		c.AddRoom(eventID)
		rm.broadcastLocked(models.OutboundEvent{
			Type:     models.EventUserJoined,
			RoomID:   eventID,
			UserID:   c.GetUserID(),
			UserName: c.GetUserName(),
		}, "")
		rm.mu.Unlock()
		return
	}
}

// Leave removes the connection from the room. Leaving a room never joined is
// a no-op, not an error. The last member out takes the room's transient
// state with it.
func (m *RoomManager) Leave(eventID string, c Client) {
	rm, ok := m.get(eventID)
	if !ok {
		return
	}

	rm.mu.Lock()
	if _, member := rm.members[c.GetConnID()]; !member {
		rm.mu.Unlock()
		return
	}
	delete(rm.members, c.GetConnID())
	delete(rm.typing, c.GetUserID())
	c.RemoveRoom(eventID)
	empty := len(rm.members) == 0
	if empty {
		rm.closed = true
	} else {
		rm.broadcastLocked(models.OutboundEvent{
			Type:   models.EventUserLeft,
			RoomID: eventID,
			UserID: c.GetUserID(),
		}, "")
	}
	rm.mu.Unlock()

	if empty {
		m.mu.Lock()
		if cur, ok := m.rooms[eventID]; ok && cur == rm {
			delete(m.rooms, eventID)
		}
		m.mu.Unlock()
	}
}

// Broadcast delivers the event to every current member of the room except
// the optionally excluded connection. Delivery is best-effort per member:
// a stale recipient never fails the broadcast.
func (m *RoomManager) Broadcast(eventID string, ev models.OutboundEvent, excludeConnID string) {
	rm, ok := m.get(eventID)
	if !ok {
		return
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.broadcastLocked(ev, excludeConnID)
}

// SetTyping updates the room's typing set, last-write-wins per user, and
// broadcasts the change to everyone but the typist. A stop for a user not
// currently typing is a harmless no-op.
func (m *RoomManager) SetTyping(eventID, userID, userName string, isTyping bool, excludeConnID string) {
	rm, ok := m.get(eventID)
	if !ok {
		return
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	eventType := models.EventTyping
	if isTyping {
		rm.typing[userID] = time.Now()
	} else {
		if _, ok := rm.typing[userID]; !ok {
			return
		}
		delete(rm.typing, userID)
		eventType = models.EventStopTyping
	}

	rm.broadcastLocked(models.OutboundEvent{
		Type:     eventType,
		UserID:   userID,
		UserName: userName,
	}, excludeConnID)
}

// IsMember reports whether the connection currently belongs to the room.
func (m *RoomManager) IsMember(eventID, connID string) bool {
	rm, ok := m.get(eventID)
	if !ok {
		return false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	_, member := rm.members[connID]
	return member
}

// MemberCount returns the number of connections in the room, 0 if the room
// does not exist.
func (m *RoomManager) MemberCount(eventID string) int {
	rm, ok := m.get(eventID)
	if !ok {
		return 0
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return len(rm.members)
}

// TypingUsers snapshots the ids of users currently marked typing.
func (m *RoomManager) TypingUsers(eventID string) []string {
	rm, ok := m.get(eventID)
	if !ok {
		return nil
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return lo.Keys(rm.typing)
}

// RoomCount returns the number of rooms currently holding state.
func (m *RoomManager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// broadcastLocked fans the event out to every member. Callers hold rm.mu.
func (rm *room) broadcastLocked(ev models.OutboundEvent, excludeConnID string) {
	for connID, member := range rm.members {
		if connID == excludeConnID {
			continue
		}
		trySend(member, ev)
	}
}
