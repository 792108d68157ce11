package mysql

import (
	"encoding/json"
	"strings"

	"github.com/bryanwahyu/skinai/internal/domain/analysis"
)

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func encodeResult(r *analysis.Result) (string, error) {
	if r == nil {
		// result_json column requires valid JSON; use empty object
		return "{}", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeResult(s string) (*analysis.Result, error) {
	var r analysis.Result
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, err
	}
	return &r, nil
}
