package ai

import (
	"context"

	"github.com/bryanwahyu/skinai/internal/domain/media"
)

// Client port untuk provider AI multimodal. Mengembalikan teks mentah dari model.
type Client interface {
	AnalyzeImage(ctx context.Context, img *media.Payload) (string, error)
}

// Settings konfigurasi non-rahasia yang boleh ditampilkan
type Settings struct {
	HasAPIKey   bool    `json:"hasApiKey"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float32 `json:"temperature"`
	DetailLevel string  `json:"detailLevel"`
}
