package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrNotConfigured API key kosong atau masih placeholder
var ErrNotConfigured = errors.New("analysis service not configured, please check your configuration")
