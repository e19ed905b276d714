package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/chat"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/logger"
)

type Service struct {
	sessions *chat.SessionStore
	backends *chat.Registry
}

func NewAssistantService(sessions *chat.SessionStore, backends *chat.Registry) *Service {
	return &Service{sessions: sessions, backends: backends}
}

// History returns the session log, seeding the greeting into an empty one.
func (s *Service) History(_ context.Context, sessionID string) []domain.Message {
	session := s.sessions.Get(sessionID)
	session.AppendIfEmpty(domain.Message{Role: domain.RoleAssistant, Content: domain.OpeningMessage})
	return session.Messages()
}

// Send appends the user message, asks the backend for a reply and appends it.
// A failed reply leaves the user message in the log and nothing else.
func (s *Service) Send(ctx context.Context, sessionID, backendName, message string) (domain.Message, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.Message{}, constants.ErrEmptyMessage
	}

	backend, err := s.backends.Get(backendName)
	if err != nil {
		return domain.Message{}, err
	}

	ctx = logger.WithFields(ctx, "backend", backend.Name())

	s.History(ctx, sessionID)
	session := s.sessions.Get(sessionID)
	session.Append(domain.Message{Role: domain.RoleUser, Content: message})

	content, err := backend.Reply(ctx, session.Messages())
	if err != nil {
		logger.Warnf(ctx, "chat reply failed: %s", err.Error())
		return domain.Message{}, fmt.Errorf("backend.Reply: %w", err)
	}

	reply := domain.Message{Role: domain.RoleAssistant, Content: content}
	session.Append(reply)

	return reply, nil
}

// Reset forgets the session; the next History starts a fresh log.
func (s *Service) Reset(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

func (s *Service) Backends() (string, []string) {
	return s.backends.Default(), s.backends.Names()
}
