package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = OperatorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	keys := map[string]string{"ops": "s3cret"}

	tests := []struct {
		name     string
		keys     map[string]string
		header   string
		code     int
		operator string
	}{
		{"disabled", nil, "", http.StatusOK, ""},
		{"missing", keys, "", http.StatusUnauthorized, ""},
		{"blank bearer", keys, "Bearer ", http.StatusUnauthorized, ""},
		{"wrong", keys, "Bearer nope", http.StatusUnauthorized, ""},
		{"bearer", keys, "Bearer s3cret", http.StatusOK, "ops"},
		{"raw", keys, "s3cret", http.StatusOK, "ops"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			APIKeyAuth(tt.keys)(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.operator, seen)
		})
	}
}
