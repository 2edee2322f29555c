package hub

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapu/chess-rooms-go/internal/msgcat"
	"github.com/kapu/chess-rooms-go/internal/obslog"
	"github.com/kapu/chess-rooms-go/internal/room"
	"github.com/kapu/chess-rooms-go/pkg/roomdto"
)

// Sender delivers one outbound event to one connection. Delivery is
// fire-and-forget: no acknowledgment, no retry — a disconnected peer
// simply does not receive the event.
type Sender interface {
	Send(connID string, ev roomdto.Event)
}

// Hub routes inbound events to room mutations and fans the results out
// to the room's members. Events are processed strictly one at a time
// to completion: every handler runs under mu, which is the single
// logical thread the lock-free room store relies on.
type Hub struct {
	mu      sync.Mutex
	store   *room.Store
	catalog *msgcat.Catalog
	sender  Sender
}

func New(store *room.Store, catalog *msgcat.Catalog, sender Sender) *Hub {
	return &Hub{store: store, catalog: catalog, sender: sender}
}

// Dispatch handles one inbound event from a connection. Unknown event
// names and undecodable payloads are ignored rather than answered.
func (h *Hub) Dispatch(connID string, ev roomdto.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch ev.Name {
	case roomdto.EvtCreateRoom:
		h.handleCreateRoom(connID, ev.Data)
	case roomdto.EvtJoinRoom:
		h.handleJoinRoom(connID, ev.Data)
	case roomdto.EvtNewMessage:
		h.handleNewMessage(connID, ev.Data)
	case roomdto.EvtStartGame:
		h.handleStartGame(connID, ev.Data)
	case roomdto.EvtMove:
		h.handleMove(connID, ev.Data)
	case roomdto.EvtUndo:
		h.handleUndo(connID)
	case roomdto.EvtReset:
		h.handleReset(connID)
	case roomdto.EvtGameOver:
		h.handleGameOver(connID, ev.Data)
	case roomdto.EvtGetRoomState:
		h.handleGetRoomState(connID, ev.Data)
	default:
		obslog.L().Debug("event_ignored",
			zap.String("conn_id", connID),
			zap.String("event", ev.Name),
		)
	}
}

// Disconnect removes the connection's session and notifies its room.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handleLeave(connID)
}

func (h *Hub) handleCreateRoom(connID string, raw json.RawMessage) {
	var username string
	if !h.decode(connID, raw, &username) {
		return
	}
	res, err := h.store.CreateRoom(username, connID)
	if err != nil {
		h.sendError(connID, err)
		return
	}
	obslog.L().Info("room_create",
		zap.String("room", res.Room.Code),
		zap.String("conn_id", connID),
		zap.String("username", res.Session.Username),
	)
	h.send(connID, roomdto.EvtRoomCreated, res.Room.Code)
	h.emitJoin(res)
}

func (h *Hub) handleJoinRoom(connID string, raw json.RawMessage) {
	var req roomdto.JoinRoomRequest
	if !h.decode(connID, raw, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.RoomCode) == "" {
		h.sendError(connID, room.ErrInvalidArgs)
		return
	}
	res, err := h.store.JoinRoom(req.RoomCode, req.Username, connID)
	if err != nil {
		h.sendError(connID, err)
		return
	}
	if res.Superseded != nil {
		obslog.L().Info("session_superseded",
			zap.String("room", res.Room.Code),
			zap.String("username", res.Session.Username),
			zap.String("old_conn_id", res.Superseded.ConnID),
			zap.String("new_conn_id", connID),
		)
	}
	obslog.L().Info("room_join",
		zap.String("room", res.Room.Code),
		zap.String("conn_id", connID),
		zap.String("username", res.Session.Username),
	)
	h.emitJoin(res)
}

// emitJoin sends the joiner its private framing, then the whole room
// the membership change. The joiner is excluded from the user-joined
// notice so clients can frame their own arrival differently.
func (h *Hub) emitJoin(res *room.JoinResult) {
	r, sess := res.Room, res.Session
	h.send(sess.ConnID, roomdto.EvtJoined, r.Code)
	h.send(sess.ConnID, roomdto.EvtMessageHistory, toMessages(r.History.Snapshot()))
	h.send(sess.ConnID, roomdto.EvtGameState, toGameState(r.Game))
	h.broadcast(r, roomdto.EvtUsersUpdate, toUsers(r.Members()), "")
	notice := h.text("room.user_joined",
		map[string]any{"Name": sess.Username},
		sess.Username+" joined the chat")
	h.broadcast(r, roomdto.EvtUserJoined, notice, sess.ConnID)
}

func (h *Hub) handleNewMessage(connID string, raw json.RawMessage) {
	var text string
	if !h.decode(connID, raw, &text) {
		return
	}
	sess, r, ok := h.resolve(connID)
	if !ok {
		// Chat from a connection without a session goes nowhere.
		return
	}
	msg := room.Message{
		ID:        uuid.NewString(),
		Username:  sess.Username,
		Text:      text,
		Timestamp: time.Now(),
	}
	r.History.Append(msg)
	h.broadcast(r, roomdto.EvtMessageReceived, toMessage(msg), "")
}

func (h *Hub) handleStartGame(connID string, raw json.RawMessage) {
	var req roomdto.StartGameRequest
	if !h.decode(connID, raw, &req) {
		return
	}
	sess, r, ok := h.resolve(connID)
	if !ok {
		h.sendError(connID, room.ErrNoSession)
		return
	}
	if strings.TrimSpace(req.WhitePlayer) == "" || strings.TrimSpace(req.BlackPlayer) == "" {
		h.sendError(connID, room.ErrInvalidArgs)
		return
	}
	r.Game.Start(req.WhitePlayer, req.BlackPlayer)
	obslog.L().Info("game_start",
		zap.String("room", r.Code),
		zap.String("white", r.Game.WhitePlayer),
		zap.String("black", r.Game.BlackPlayer),
		zap.String("by", sess.Username),
	)
	h.broadcast(r, roomdto.EvtGameStarted, roomdto.GameStarted{
		WhitePlayer: r.Game.WhitePlayer,
		BlackPlayer: r.Game.BlackPlayer,
		FEN:         r.Game.FEN,
		Turn:        string(r.Game.Turn()),
	}, "")
}

func (h *Hub) handleMove(connID string, raw json.RawMessage) {
	var req roomdto.MoveRequest
	if !h.decode(connID, raw, &req) {
		return
	}
	sess, r, ok := h.resolve(connID)
	if !ok {
		h.sendError(connID, room.ErrNoSession)
		return
	}
	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.FEN) == "" {
		h.sendError(connID, room.ErrInvalidArgs)
		return
	}
	mv, err := r.Game.ApplyMove(sess.Username, room.MoveInput{
		From:      req.From,
		To:        req.To,
		Promotion: req.Promotion,
		FEN:       req.FEN,
		SAN:       req.SAN,
	})
	if err != nil {
		h.sendError(connID, err)
		return
	}
	obslog.L().Info("game_move",
		zap.String("room", r.Code),
		zap.String("author", mv.Author),
		zap.String("san", mv.SAN),
		zap.String("turn", string(r.Game.Turn())),
	)
	h.broadcast(r, roomdto.EvtMoveReceived, roomdto.MoveReceived{
		MoveRecord: toMoveRecord(*mv),
		Turn:       string(r.Game.Turn()),
	}, "")
}

func (h *Hub) handleUndo(connID string) {
	sess, r, ok := h.resolve(connID)
	if !ok {
		h.sendError(connID, room.ErrNoSession)
		return
	}
	removed, err := r.Game.Undo(sess.Username)
	if err != nil {
		h.sendError(connID, err)
		return
	}
	obslog.L().Info("game_undo",
		zap.String("room", r.Code),
		zap.String("author", sess.Username),
		zap.Int("removed", removed),
	)
	h.broadcast(r, roomdto.EvtUndoReceived, roomdto.UndoReceived{
		FEN:          r.Game.FEN,
		Turn:         string(r.Game.Turn()),
		Moves:        toMoveRecords(r.Game.Moves),
		RemovedCount: removed,
	}, "")
}

func (h *Hub) handleReset(connID string) {
	sess, r, ok := h.resolve(connID)
	if !ok {
		h.sendError(connID, room.ErrNoSession)
		return
	}
	r.Game.Reset()
	obslog.L().Info("game_reset",
		zap.String("room", r.Code),
		zap.String("by", sess.Username),
	)
	h.broadcast(r, roomdto.EvtResetReceived, roomdto.ResetReceived{
		FEN:  r.Game.FEN,
		Turn: string(r.Game.Turn()),
	}, "")
}

func (h *Hub) handleGameOver(connID string, raw json.RawMessage) {
	var req roomdto.GameOverRequest
	if !h.decode(connID, raw, &req) {
		return
	}
	sess, r, ok := h.resolve(connID)
	if !ok {
		h.sendError(connID, room.ErrNoSession)
		return
	}
	if err := r.Game.Finish(req.Winner); err != nil {
		h.sendError(connID, err)
		return
	}
	obslog.L().Info("game_over",
		zap.String("room", r.Code),
		zap.String("winner", r.Game.Winner),
		zap.String("by", sess.Username),
	)
	h.broadcast(r, roomdto.EvtGameEnded, roomdto.GameEnded{
		Winner: r.Game.Winner,
		FEN:    r.Game.FEN,
		Turn:   string(r.Game.Turn()),
	}, "")
}

func (h *Hub) handleGetRoomState(connID string, raw json.RawMessage) {
	var code string
	if !h.decode(connID, raw, &code) {
		return
	}
	r, ok := h.store.Get(code)
	if !ok {
		h.sendError(connID, room.ErrRoomNotFound)
		return
	}
	h.send(connID, roomdto.EvtUsersUpdate, toUsers(r.Members()))
	h.send(connID, roomdto.EvtMessageHistory, toMessages(r.History.Snapshot()))
	h.send(connID, roomdto.EvtGameState, toGameState(r.Game))
}

func (h *Hub) handleLeave(connID string) {
	r, sess, ok := h.store.Leave(connID)
	if !ok || sess == nil {
		return
	}
	if r == nil || r.MemberCount() == 0 {
		obslog.L().Info("room_destroy", zap.String("room", sess.RoomCode))
		return
	}
	h.broadcast(r, roomdto.EvtUsersUpdate, toUsers(r.Members()), "")
	notice := h.text("room.user_left",
		map[string]any{"Name": sess.Username},
		sess.Username+" left the chat")
	h.broadcast(r, roomdto.EvtUserLeft, notice, "")
	obslog.L().Info("room_leave",
		zap.String("room", r.Code),
		zap.String("username", sess.Username),
	)
}

// resolve looks up the connection's session and room via the registry.
func (h *Hub) resolve(connID string) (*room.Session, *room.Room, bool) {
	sess, ok := h.store.Resolve(connID)
	if !ok {
		return nil, nil, false
	}
	r, ok := h.store.Get(sess.RoomCode)
	if !ok {
		return nil, nil, false
	}
	return sess, r, true
}

func (h *Hub) decode(connID string, raw json.RawMessage, out any) bool {
	if err := json.Unmarshal(raw, out); err != nil {
		obslog.L().Debug("payload_undecodable",
			zap.String("conn_id", connID),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (h *Hub) send(connID, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		obslog.L().Warn("payload_marshal_error", zap.String("event", name), zap.Error(err))
		return
	}
	h.sender.Send(connID, roomdto.Event{Name: name, Data: data})
}

// broadcast multicasts one event to every member of the room, with an
// optional exclusion of the originating connection. The payload is
// marshaled once.
func (h *Hub) broadcast(r *room.Room, name string, payload any, exceptConnID string) {
	data, err := json.Marshal(payload)
	if err != nil {
		obslog.L().Warn("payload_marshal_error", zap.String("event", name), zap.Error(err))
		return
	}
	ev := roomdto.Event{Name: name, Data: data}
	for _, m := range r.Members() {
		if m.ConnID == exceptConnID {
			continue
		}
		h.sender.Send(m.ConnID, ev)
	}
}

// sendError surfaces a domain error to the originating connection only,
// as an error event carrying a human-readable reason.
func (h *Hub) sendError(connID string, err error) {
	reason := err.Error()
	if derr, ok := err.(*room.Error); ok {
		reason = h.text(catalogKey(derr), nil, derr.Message)
	}
	h.send(connID, roomdto.EvtError, reason)
}

func catalogKey(err *room.Error) string {
	switch err {
	case room.ErrRoomNotFound:
		return "errors.room_not_found"
	case room.ErrNoSession:
		return "errors.no_session"
	case room.ErrInvalidArgs:
		return "errors.invalid_payload"
	case room.ErrBadEncoding:
		return "errors.invalid_encoding"
	case room.ErrGameNotActive:
		return "errors.game_not_active"
	case room.ErrNotYourTurn:
		return "errors.not_your_turn"
	case room.ErrNothingToUndo:
		return "errors.nothing_to_undo"
	case room.ErrUndoNotAuthor:
		return "errors.undo_not_author"
	}
	return ""
}

func (h *Hub) text(key string, data map[string]any, fallback string) string {
	if h.catalog == nil || key == "" {
		return fallback
	}
	s, err := h.catalog.Render(key, data)
	if err != nil {
		return fallback
	}
	return s
}
