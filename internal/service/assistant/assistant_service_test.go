package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/chat"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

type echoBackend struct {
	name string
	err  error
	seen [][]domain.Message
}

func (b *echoBackend) Name() string { return b.name }

func (b *echoBackend) Reply(_ context.Context, history []domain.Message) (string, error) {
	b.seen = append(b.seen, history)
	if b.err != nil {
		return "", b.err
	}
	return "jawab: " + history[len(history)-1].Content, nil
}

func newService(backends ...chat.Backend) *Service {
	return NewAssistantService(chat.NewSessionStore(constants.SessionTTL), chat.NewRegistry(backends[0].Name(), backends...))
}

func TestHistory_SeedsGreeting(t *testing.T) {
	svc := newService(&echoBackend{name: "a"})

	msgs := svc.History(context.Background(), "s1")
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleAssistant, msgs[0].Role)
	assert.Equal(t, domain.OpeningMessage, msgs[0].Content)

	assert.Len(t, svc.History(context.Background(), "s1"), 1)
}

func TestSend(t *testing.T) {
	b := &echoBackend{name: "a"}
	svc := newService(b)

	reply, err := svc.Send(context.Background(), "s1", "", "  berapa nisab?  ")
	require.NoError(t, err)
	assert.Equal(t, "jawab: berapa nisab?", reply.Content)

	msgs := svc.History(context.Background(), "s1")
	require.Len(t, msgs, 3)
	assert.Equal(t, domain.RoleAssistant, msgs[0].Role)
	assert.Equal(t, domain.Message{Role: domain.RoleUser, Content: "berapa nisab?"}, msgs[1])
	assert.Equal(t, reply, msgs[2])

	require.Len(t, b.seen, 1)
	assert.Len(t, b.seen[0], 2)
}

func TestSend_SelectsBackend(t *testing.T) {
	a := &echoBackend{name: "a"}
	g := &echoBackend{name: "g"}
	svc := newService(a, g)

	_, err := svc.Send(context.Background(), "s1", "g", "halo")
	require.NoError(t, err)
	assert.Empty(t, a.seen)
	assert.Len(t, g.seen, 1)

	_, err = svc.Send(context.Background(), "s1", "nope", "halo")
	assert.True(t, errors.Is(err, constants.ErrUnknownBackend))
}

func TestSend_EmptyMessage(t *testing.T) {
	svc := newService(&echoBackend{name: "a"})
	_, err := svc.Send(context.Background(), "s1", "", "   ")
	assert.True(t, errors.Is(err, constants.ErrEmptyMessage))
}

func TestSend_BackendErrorKeepsUserMessage(t *testing.T) {
	svc := newService(&echoBackend{name: "a", err: constants.ErrCredentialMissing})

	_, err := svc.Send(context.Background(), "s1", "", "halo")
	assert.True(t, errors.Is(err, constants.ErrCredentialMissing))

	msgs := svc.History(context.Background(), "s1")
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[1].Role)
}

func TestReset(t *testing.T) {
	svc := newService(&echoBackend{name: "a"})
	_, err := svc.Send(context.Background(), "s1", "", "halo")
	require.NoError(t, err)

	svc.Reset(context.Background(), "s1")
	assert.Len(t, svc.History(context.Background(), "s1"), 1)
}

func TestReset_DropsSessionFromStore(t *testing.T) {
	sessions := chat.NewSessionStore(constants.SessionTTL)
	b := &echoBackend{name: "a"}
	svc := NewAssistantService(sessions, chat.NewRegistry(b.Name(), b))

	_, err := svc.Send(context.Background(), "s1", "", "halo")
	require.NoError(t, err)
	require.Equal(t, 1, sessions.Len())

	svc.Reset(context.Background(), "s1")
	assert.Equal(t, 0, sessions.Len())
}

func TestHistory_ConcurrentFirstLoadGreetsOnce(t *testing.T) {
	svc := newService(&echoBackend{name: "a"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.History(context.Background(), "s1")
		}()
	}
	wg.Wait()

	assert.Len(t, svc.History(context.Background(), "s1"), 1)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newService(&echoBackend{name: "a"})
	_, err := svc.Send(context.Background(), "s1", "", "halo")
	require.NoError(t, err)

	assert.Len(t, svc.History(context.Background(), "s2"), 1)
}

func TestBackends(t *testing.T) {
	svc := newService(&echoBackend{name: "b"}, &echoBackend{name: "a"})
	def, names := svc.Backends()
	assert.Equal(t, "b", def)
	assert.Equal(t, []string{"a", "b"}, names)
}
