package room

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultHistoryLimit bounds per-room chat history.
	DefaultHistoryLimit = 100

	codeLen         = 8
	codeGenAttempts = 5
)

// Room aggregates membership, chat history, and game state under one
// code. Membership preserves admission order for stable snapshots.
type Room struct {
	Code    string
	History *History
	Game    *GameState

	members map[string]*Session
	order   []string
}

// Members returns the sessions in admission order.
func (r *Room) Members() []*Session {
	out := make([]*Session, 0, len(r.order))
	for _, id := range r.order {
		if s, ok := r.members[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *Room) MemberCount() int { return len(r.members) }

func (r *Room) memberByName(username string) (*Session, bool) {
	for _, s := range r.members {
		if s.Username == username {
			return s, true
		}
	}
	return nil, false
}

func (r *Room) admit(s *Session) {
	r.members[s.ConnID] = s
	r.order = append(r.order, s.ConnID)
}

func (r *Room) evict(connID string) {
	delete(r.members, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// JoinResult reports the admitted session and, if the display name was
// already taken in the room, the superseded one.
type JoinResult struct {
	Room       *Room
	Session    *Session
	Superseded *Session
}

// Store owns every live Room and the session registry that resolves a
// connection to its room in O(1). All mutation happens on the
// dispatcher's single logical thread, so the store carries no locking.
type Store struct {
	historyLimit int
	rooms        map[string]*Room
	sessions     map[string]*Session
}

func NewStore(historyLimit int) *Store {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Store{
		historyLimit: historyLimit,
		rooms:        make(map[string]*Room),
		sessions:     make(map[string]*Session),
	}
}

// CreateRoom allocates a collision-free code, initializes an empty
// room in waiting status, and admits the creator as its first member.
func (s *Store) CreateRoom(username, connID string) (*JoinResult, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(connID) == "" {
		return nil, ErrInvalidArgs
	}
	var code string
	for i := 0; i < codeGenAttempts; i++ {
		c := uuid.NewString()[:codeLen]
		if _, taken := s.rooms[c]; !taken {
			code = c
			break
		}
	}
	if code == "" {
		return nil, fmt.Errorf("failed to allocate room code")
	}
	r := &Room{
		Code:    code,
		History: NewHistory(s.historyLimit),
		Game:    NewGameState(),
		members: make(map[string]*Session),
	}
	s.rooms[code] = r
	return s.JoinRoom(code, username, connID)
}

// JoinRoom admits the connection under the given display name. If a
// member already holds that name its session is superseded (evicted)
// first, which makes reconnection under the same name idempotent.
func (s *Store) JoinRoom(code, username, connID string) (*JoinResult, error) {
	code = strings.TrimSpace(code)
	username = strings.TrimSpace(username)
	if code == "" || username == "" || strings.TrimSpace(connID) == "" {
		return nil, ErrInvalidArgs
	}
	r, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	// A session belongs to at most one room; detach any previous one.
	// Re-joining the same room must not trip empty-room destruction,
	// so only a cross-room move goes through Leave.
	if prev, exists := s.sessions[connID]; exists {
		if prev.RoomCode == code {
			r.evict(connID)
			delete(s.sessions, connID)
		} else {
			s.Leave(connID)
		}
	}
	var superseded *Session
	if old, found := r.memberByName(username); found {
		r.evict(old.ConnID)
		delete(s.sessions, old.ConnID)
		superseded = old
	}
	sess := &Session{ConnID: connID, Username: username, RoomCode: code}
	r.admit(sess)
	s.sessions[connID] = sess
	return &JoinResult{Room: r, Session: sess, Superseded: superseded}, nil
}

// Leave removes the connection's session from its room. The room is
// destroyed the instant its membership becomes empty; the returned
// Room then reports zero members.
func (s *Store) Leave(connID string) (*Room, *Session, bool) {
	sess, ok := s.sessions[connID]
	if !ok {
		return nil, nil, false
	}
	delete(s.sessions, connID)
	r, ok := s.rooms[sess.RoomCode]
	if !ok {
		return nil, sess, true
	}
	r.evict(connID)
	if r.MemberCount() == 0 {
		delete(s.rooms, r.Code)
	}
	return r, sess, true
}

// Get returns the room for a code.
func (s *Store) Get(code string) (*Room, bool) {
	r, ok := s.rooms[strings.TrimSpace(code)]
	return r, ok
}

// Resolve returns the session for a connection without scanning rooms.
func (s *Store) Resolve(connID string) (*Session, bool) {
	sess, ok := s.sessions[connID]
	return sess, ok
}

// RoomCount reports the number of live rooms.
func (s *Store) RoomCount() int { return len(s.rooms) }
