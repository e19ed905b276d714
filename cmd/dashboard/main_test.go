package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/chat"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

type fixedPrice struct{}

func (fixedPrice) SellPrice(context.Context) (decimal.Decimal, error) {
	return decimal.NewFromInt(1000000), nil
}

func TestNewChatRegistry_UsesHTTPTimeout(t *testing.T) {
	t.Cleanup(viper.Reset)

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	viper.Set(constants.ViperHTTPTimeoutKey, 50*time.Millisecond)
	viper.Set(constants.ViperChatDefaultKey, chat.BackendAssistant)
	viper.Set(constants.ViperAssistantURLKey, slow.URL)
	viper.Set(constants.ViperAssistantAPIKey, "a-key")
	viper.Set(constants.ViperGenerativeURLKey, slow.URL)
	viper.Set(constants.ViperGenerativeAPIKey, "g-key")

	registry := newChatRegistry(fixedPrice{})
	history := []domain.Message{{Role: domain.RoleUser, Content: "halo"}}

	for _, name := range []string{chat.BackendAssistant, chat.BackendGenerative} {
		b, err := registry.Get(name)
		require.NoError(t, err)

		started := time.Now()
		_, err = b.Reply(context.Background(), history)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, constants.ErrNetworkFetch), name)
		assert.Less(t, time.Since(started), time.Second, "%s must give up after http.timeout", name)
	}
}

func TestNewChatRegistry_Default(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set(constants.ViperChatDefaultKey, chat.BackendGenerative)
	b, err := newChatRegistry(fixedPrice{}).Get("")
	require.NoError(t, err)
	assert.Equal(t, chat.BackendGenerative, b.Name())
}
