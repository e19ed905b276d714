package chat

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/logger"
)

const (
	DefaultGenerativeURL   = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGenerativeModel = "gemini-1.5-flash"

	maxStreamLine = 1 << 20
)

// PriceSource supplies the gold price injected into the system prompt.
type PriceSource interface {
	SellPrice(ctx context.Context) (decimal.Decimal, error)
}

type GenerativeConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// GenerativeBackend sends the whole conversation to a generative model and
// collects its streamed answer.
type GenerativeBackend struct {
	baseURL string
	model   string
	apiKey  string
	prices  PriceSource
	client  *http.Client
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequestBody struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateChunk struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewGenerativeBackend(cfg GenerativeConfig, prices PriceSource) *GenerativeBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGenerativeURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGenerativeModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &GenerativeBackend{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		prices:  prices,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (b *GenerativeBackend) Name() string {
	return BackendGenerative
}

// Reply streams the answer, concatenates the chunks and strips code fences.
func (b *GenerativeBackend) Reply(ctx context.Context, history []domain.Message) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("%w: generative api key", constants.ErrCredentialMissing)
	}
	if _, ok := lastUserMessage(history); !ok {
		return "", constants.ErrEmptyMessage
	}

	price, err := b.prices.SellPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("prices.SellPrice: %w", err)
	}

	prompt, err := RenderSystemPrompt(price)
	if err != nil {
		return "", fmt.Errorf("RenderSystemPrompt: %w", err)
	}

	payload, err := sonic.Marshal(generateRequestBody{
		SystemInstruction: &content{Parts: []part{{Text: prompt}}},
		Contents:          toContents(history),
	})
	if err != nil {
		return "", fmt.Errorf("sonic.Marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", b.baseURL, b.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: generative: %s", constants.ErrNetworkFetch, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: generative API error (status %d): %s", constants.ErrNetworkFetch, resp.StatusCode, string(body))
	}

	text, err := readStream(ctx, resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: generative: %s", constants.ErrNetworkFetch, err.Error())
	}

	return StripCodeFences(text), nil
}

// Leading assistant turns (the greeting) are dropped, the model expects the user to speak first.
func toContents(history []domain.Message) []content {
	contents := make([]content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == domain.RoleAssistant {
			if len(contents) == 0 {
				continue
			}
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	return contents
}

func readStream(ctx context.Context, r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLine)

	var out strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk generateChunk
		if err := sonic.UnmarshalString(data, &chunk); err != nil {
			return "", fmt.Errorf("parse chunk: %w", err)
		}
		if chunk.Error != nil {
			return "", fmt.Errorf("stream error %d: %s", chunk.Error.Code, chunk.Error.Message)
		}

		for _, c := range chunk.Candidates {
			for _, p := range c.Content.Parts {
				if p.Text == "" {
					continue
				}
				out.WriteString(p.Text)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scanner: %w", err)
	}

	if out.Len() == 0 {
		logger.Warnf(ctx, "generative stream finished without text")
		return "", fmt.Errorf("empty response")
	}

	return out.String(), nil
}
