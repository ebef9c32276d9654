package realtime

// Server-to-session event names.
const (
	EventLatestContent = "latestContent"
	EventReceiveUpdate = "receiveUpdate"
	EventLetterError   = "letterError"
)

// Emitter delivers one named event to a single connected client. The
// socket.io socket satisfies it in production; tests substitute a capture
// hook.
type Emitter interface {
	Emit(event string, payload any)
}

// Session is one live client connection. The transport layer owns the
// session; rooms hold only non-owning references to it.
type Session struct {
	id      string
	emitter Emitter
}

func NewSession(id string, emitter Emitter) *Session {
	return &Session{id: id, emitter: emitter}
}

func (s *Session) ID() string { return s.id }

// Send emits an event to this session's client. A session with no emitter
// drops the event rather than panicking, mirroring a client that is already
// gone.
func (s *Session) Send(event string, payload any) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(event, payload)
}
