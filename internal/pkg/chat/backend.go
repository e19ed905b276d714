package chat

import (
	"context"
	"fmt"
	"sort"

	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

const (
	BackendAssistant  = "assistant"
	BackendGenerative = "generative"
)

// Backend produces one assistant reply for a conversation whose last message is the user's.
type Backend interface {
	Name() string
	Reply(ctx context.Context, history []domain.Message) (string, error)
}

type Registry struct {
	backends    map[string]Backend
	defaultName string
}

func NewRegistry(defaultName string, backends ...Backend) *Registry {
	r := &Registry{backends: make(map[string]Backend, len(backends)), defaultName: defaultName}
	for _, b := range backends {
		r.backends[b.Name()] = b
	}
	return r
}

// Get resolves a backend by name; an empty name selects the default.
func (r *Registry) Get(name string) (Backend, error) {
	if name == "" {
		name = r.defaultName
	}

	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", constants.ErrUnknownBackend, name)
	}
	return b, nil
}

func (r *Registry) Default() string {
	return r.defaultName
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for n := range r.backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lastUserMessage(history []domain.Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleUser {
			return history[i].Content, true
		}
	}
	return "", false
}
