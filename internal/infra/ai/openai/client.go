package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/skinai/internal/domain/ai"
	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	"github.com/bryanwahyu/skinai/internal/domain/media"
	"github.com/bryanwahyu/skinai/internal/infra/ai/prompt"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 4000
	DefaultTemperature = float32(0.3)
	DefaultDetail      = "high"

	placeholderKey = "your_openai_api_key_here"
)

// Options konfigurasi client
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Detail      string
	HTTPClient  *http.Client
}

type Client struct {
	api  *openai.Client
	opts Options
}

// Configured true kalau key ada dan bukan placeholder
func Configured(apiKey string) bool {
	k := strings.TrimSpace(apiKey)
	return k != "" && k != placeholderKey
}

func NewClient(o Options) *Client {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.Temperature < 0 {
		o.Temperature = DefaultTemperature
	}
	if o.Detail == "" {
		o.Detail = DefaultDetail
	}
	cfg := openai.DefaultConfig(o.APIKey)
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.HTTPClient != nil {
		cfg.HTTPClient = o.HTTPClient
	}
	return &Client{api: openai.NewClientWithConfig(cfg), opts: o}
}

// Settings konfigurasi yang aman untuk ditampilkan
func (c *Client) Settings() domai.Settings {
	return domai.Settings{
		HasAPIKey:   Configured(c.opts.APIKey),
		Model:       c.opts.Model,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
		DetailLevel: c.opts.Detail,
	}
}

// BuildRequest satu pesan user: instruksi teks + gambar inline
func (c *Client) BuildRequest(img *media.Payload) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model: c.opts.Model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt.SkinAnalysis,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    img.DataURL(),
							Detail: openai.ImageURLDetail(c.opts.Detail),
						},
					},
				},
			},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if isReasoningModel(c.opts.Model) {
		req.MaxCompletionTokens = c.opts.MaxTokens
	} else {
		req.MaxTokens = c.opts.MaxTokens
		req.Temperature = c.opts.Temperature
	}
	return req
}

func (c *Client) AnalyzeImage(ctx context.Context, img *media.Payload) (string, error) {
	if !Configured(c.opts.APIKey) {
		return "", domai.ErrNotConfigured
	}
	resp, err := c.api.CreateChatCompletion(ctx, c.BuildRequest(img))
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", analysis.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func isReasoningModel(model string) bool {
	return strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5")
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", domai.ErrQuotaExceeded, apiErr.Message)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", domai.ErrNotConfigured, apiErr.Message)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, reqErr.Err)
	}
	return fmt.Errorf("failed to create chat completion: %w", err)
}
