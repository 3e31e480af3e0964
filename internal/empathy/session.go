package empathy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hark-back/internal/llm"
	"hark-back/internal/store"
)

// ErrEmptyMessage is returned by Send for blank input.
var ErrEmptyMessage = errors.New("empathy: empty message")

// History persists a session's turns. *store.Store implements it.
type History interface {
	CreateConversation(ctx context.Context, role, mode, persona string) (store.Conversation, error)
	AppendMessage(ctx context.Context, id uuid.UUID, role, content string) (store.Message, error)
}

// Session is one conversation with the engine. Send is safe for concurrent use; turns are
// serialized so the history stays in order.
type Session struct {
	client   llm.Client
	getModel func() string
	log      *zap.Logger

	// Preamble, if set, is called on every Send and appended to the system prompt
	// (the gallery guide uses it for what the visitor is looking at).
	Preamble func() string
	// Hints, if set, adds the request-origin block to the system prompt.
	Hints *RequestHints

	mu       sync.Mutex
	ctx      Context
	messages []llm.Message
	history  History
	convID   uuid.UUID
}

// NewSession returns a session using client and the model getModel reports at send time.
func NewSession(client llm.Client, getModel func() string, c Context, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if getModel == nil {
		getModel = func() string { return "" }
	}
	return &Session{client: client, getModel: getModel, ctx: c, log: log}
}

// Persist records every later turn in h. The conversation row is created lazily on the first Send.
func (s *Session) Persist(h History) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = h
	s.convID = uuid.Nil
}

// Context returns the current prompt context.
func (s *Session) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// SetContext replaces the prompt context and starts a new conversation.
func (s *Session) SetContext(c Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = c
	s.messages = nil
	s.convID = uuid.Nil
}

// SetPersona switches the perspective-check team. Earlier turns are kept.
func (s *Session) SetPersona(persona string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Persona = persona
}

// SetTranslation sets the from/to audiences of the translation mode.
func (s *Session) SetTranslation(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.FromRole, s.ctx.ToRole = from, to
}

// Messages returns a copy of the turns so far.
func (s *Session) Messages() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.Message(nil), s.messages...)
}

// ConversationID is the stored conversation, or uuid.Nil before the first persisted turn.
func (s *Session) ConversationID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convID
}

// Reset forgets the turns and starts a new stored conversation on the next Send.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.convID = uuid.Nil
}

func (s *Session) systemPrompt() string {
	p := SystemPrompt(s.ctx, s.Hints)
	if s.Preamble != nil {
		if extra := strings.TrimSpace(s.Preamble()); extra != "" {
			p += "\n\n" + extra
		}
	}
	return p
}

// Send adds text as a user turn, asks the model, records the reply and returns it.
// On a provider error the user turn is dropped so it can be retried. Persistence failures
// are logged and do not fail the turn.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(append([]llm.Message(nil), s.messages...), llm.Message{Role: llm.RoleUser, Content: text})
	reply, err := s.client.Complete(ctx, s.getModel(), s.systemPrompt(), turns)
	if err != nil {
		return "", fmt.Errorf("empathy: %w", err)
	}
	s.messages = append(turns, llm.Message{Role: llm.RoleAssistant, Content: reply})
	s.record(ctx, text, reply)
	return reply, nil
}

func (s *Session) record(ctx context.Context, user, reply string) {
	if s.history == nil {
		return
	}
	if s.convID == uuid.Nil {
		c, err := s.history.CreateConversation(ctx, s.ctx.UserRole, s.ctx.Mode, s.ctx.Persona)
		if err != nil {
			s.log.Warn("failed to create conversation", zap.Error(err))
			return
		}
		s.convID = c.ID
	}
	for _, m := range []llm.Message{{Role: llm.RoleUser, Content: user}, {Role: llm.RoleAssistant, Content: reply}} {
		if _, err := s.history.AppendMessage(ctx, s.convID, m.Role, m.Content); err != nil {
			s.log.Warn("failed to store message", zap.Error(err), zap.Stringer("conversation", s.convID))
			return
		}
	}
}
