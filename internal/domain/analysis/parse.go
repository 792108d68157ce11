package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// extractJSON buka blok ```json ... ``` kalau model membungkus jawabannya
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fencedJSON.FindStringSubmatch(s); len(m) == 2 {
		return m[1]
	}
	return s
}

// Parse decode output model jadi Result. Tidak ada partial recovery.
func Parse(raw string) (*Result, error) {
	s := extractJSON(raw)
	if s == "" {
		return nil, ErrEmptyResponse
	}
	if !strings.HasPrefix(s, "{") {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedResponse)
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	var r Result
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedResponse)
	}
	return &r, nil
}
