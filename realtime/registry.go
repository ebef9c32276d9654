package realtime

import "sync"

// Registry maps a letter id to the set of sessions currently viewing it.
// Rooms are created lazily on first join and removed as soon as their last
// session leaves; a session belongs to at most one room at a time.
//
// The registry is a process-scoped object created at server start and passed
// by reference to the coordinator.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Session]struct{}
	current map[*Session]string
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]map[*Session]struct{}),
		current: make(map[*Session]string),
	}
}

// Add registers a session in the room for letterID, creating the room if
// absent. If the session was in another room it is removed from that room
// first, so the single-room invariant holds by construction.
func (r *Registry) Add(letterID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.current[s]; ok && prev != letterID {
		r.removeLocked(prev, s)
	}

	room, ok := r.rooms[letterID]
	if !ok {
		room = make(map[*Session]struct{})
		r.rooms[letterID] = room
	}
	room[s] = struct{}{}
	r.current[s] = letterID
}

// Remove takes a session out of the room for letterID. Removing a session
// that is not a member is a no-op. An emptied room is deleted from the
// registry immediately.
func (r *Registry) Remove(letterID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(letterID, s)
}

// RemoveSession takes a session out of whatever room it is in and reports
// which letter id that was. Used for disconnect cleanup.
func (r *Registry) RemoveSession(s *Session) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	letterID, ok := r.current[s]
	if !ok {
		return "", false
	}
	r.removeLocked(letterID, s)
	return letterID, true
}

func (r *Registry) removeLocked(letterID string, s *Session) {
	room, ok := r.rooms[letterID]
	if !ok {
		return
	}
	if _, member := room[s]; !member {
		return
	}
	delete(room, s)
	delete(r.current, s)
	if len(room) == 0 {
		delete(r.rooms, letterID)
	}
}

// Members returns a snapshot of the room for letterID, excluding the given
// session. Fan-out iterates the snapshot so concurrent joins and leaves can
// never expose a partially updated set.
func (r *Registry) Members(letterID string, except *Session) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[letterID]
	if !ok {
		return nil
	}
	members := make([]*Session, 0, len(room))
	for s := range room {
		if s == except {
			continue
		}
		members = append(members, s)
	}
	return members
}

// Room reports which room the session currently belongs to, if any.
func (r *Registry) Room(s *Session) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	letterID, ok := r.current[s]
	return letterID, ok
}

// RoomCount reports the number of active rooms.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
