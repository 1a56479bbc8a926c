package domain

import (
	"sync"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one entry of a conversation transcript. Messages are never
// mutated once appended, except to replace a loading placeholder with its
// resolved content.
type Message struct {
	// ID is the unique message identifier.
	ID string

	// Role is one of "user", "assistant", or "system".
	Role string

	// Content is the message text.
	Content string

	// EditAction is the validated edit attached to an assistant message,
	// when the turn produced one.
	EditAction *EditAction

	// Loading marks a transient placeholder awaiting resolution.
	Loading bool

	// IsError marks a message reporting a failure.
	IsError bool

	// CreatedAt is when the message was appended.
	CreatedAt time.Time
}

// Session owns one conversation: its transcript and the active UI section
// pointer. Each session is an explicit object handed to the editor; there
// is no ambient shared state. A session processes one turn at a time.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// ProductID is the tech pack this conversation edits.
	ProductID string

	mu            sync.Mutex
	turnInFlight  bool
	messages      []Message
	activeSection string
}

// NewSession creates an empty conversation session for a product.
func NewSession(id, productID string) *Session {
	return &Session{
		ID:        id,
		ProductID: productID,
	}
}

// BeginTurn marks a turn as in flight. It returns ErrSessionBusy when a
// previous turn has not finished; callers must serialise sends.
func (s *Session) BeginTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.turnInFlight {
		return ErrSessionBusy
	}
	s.turnInFlight = true
	return nil
}

// EndTurn marks the in-flight turn as finished.
func (s *Session) EndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turnInFlight = false
}

// Append adds a message to the transcript and returns it with its
// creation time set.
func (s *Session) Append(msg Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	s.messages = append(s.messages, msg)
	return msg
}

// AppendLoading appends a transient assistant placeholder and returns it.
func (s *Session) AppendLoading(id string) Message {
	return s.Append(Message{
		ID:      id,
		Role:    RoleAssistant,
		Loading: true,
	})
}

// ResolveLoading replaces the loading placeholder with the resolved
// message content. It reports whether the placeholder was found.
func (s *Session) ResolveLoading(id string, resolved Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id && s.messages[i].Loading {
			resolved.ID = id
			resolved.Role = RoleAssistant
			resolved.Loading = false
			if resolved.CreatedAt.IsZero() {
				resolved.CreatedAt = s.messages[i].CreatedAt
			}
			s.messages[i] = resolved
			return true
		}
	}
	return false
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Recent returns the last n transcript messages, oldest first.
func (s *Session) Recent(n int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > len(s.messages) {
		n = len(s.messages)
	}
	out := make([]Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// ActiveSection returns the section currently focused in the UI.
func (s *Session) ActiveSection() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSection
}

// SetActiveSection switches UI focus to the tab owning a section.
func (s *Session) SetActiveSection(section string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSection = section
}
