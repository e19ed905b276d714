package chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

const (
	DefaultAssistantURL  = "https://prod-1-data.ke.pinecone.io/assistant"
	DefaultAssistantName = "zaki"
	DefaultTimeout       = 60 * time.Second
)

type AssistantConfig struct {
	BaseURL string
	Name    string
	APIKey  string
	Timeout time.Duration
}

// AssistantBackend talks to a managed assistant that keeps its own knowledge base.
// Only the latest user message is sent.
type AssistantBackend struct {
	baseURL string
	name    string
	apiKey  string
	client  *http.Client
}

type assistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type assistantRequestBody struct {
	Messages []assistantMessage `json:"messages"`
}

type assistantResponseBody struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      assistantMessage `json:"message"`
		FinishReason string           `json:"finish_reason"`
	} `json:"choices"`
}

func NewAssistantBackend(cfg AssistantConfig) *AssistantBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAssistantURL
	}
	if cfg.Name == "" {
		cfg.Name = DefaultAssistantName
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &AssistantBackend{
		baseURL: cfg.BaseURL,
		name:    cfg.Name,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (b *AssistantBackend) Name() string {
	return BackendAssistant
}

func (b *AssistantBackend) Reply(ctx context.Context, history []domain.Message) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("%w: assistant api key", constants.ErrCredentialMissing)
	}

	msg, ok := lastUserMessage(history)
	if !ok {
		return "", constants.ErrEmptyMessage
	}

	payload, err := sonic.Marshal(assistantRequestBody{
		Messages: []assistantMessage{{Role: string(domain.RoleUser), Content: msg}},
	})
	if err != nil {
		return "", fmt.Errorf("sonic.Marshal: %w", err)
	}

	url := fmt.Sprintf("%s/chat/%s/chat/completions", b.baseURL, b.name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: assistant: %s", constants.ErrNetworkFetch, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: assistant: read body: %s", constants.ErrNetworkFetch, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: assistant API error (status %d): %s", constants.ErrNetworkFetch, resp.StatusCode, string(body))
	}

	var parsed assistantResponseBody
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: assistant: parse response: %s", constants.ErrNetworkFetch, err.Error())
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: assistant: no choices in response", constants.ErrNetworkFetch)
	}

	return parsed.Choices[0].Message.Content, nil
}
