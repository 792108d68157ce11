package httpserver

import (
	"context"
	"errors"
	"net/http"

	appanalysis "github.com/bryanwahyu/skinai/internal/application/analysis"
	appcatalog "github.com/bryanwahyu/skinai/internal/application/catalog"
	domai "github.com/bryanwahyu/skinai/internal/domain/ai"
	"github.com/bryanwahyu/skinai/internal/domain/analysis"
	"github.com/bryanwahyu/skinai/internal/domain/capture"
	"github.com/bryanwahyu/skinai/internal/domain/catalog"
	"github.com/bryanwahyu/skinai/internal/domain/handoff"
	"github.com/bryanwahyu/skinai/internal/domain/media"
)

// badRequest input dari client yang tidak valid
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

// statusFor map error ke status HTTP + pesan untuk body
func statusFor(err error) (int, string) {
	msg := err.Error()
	var failure *appanalysis.Failure
	if errors.As(err, &failure) {
		msg = failure.Message
	}
	var br badRequest
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest, msg
	case errors.Is(err, capture.ErrInvalidTransition), errors.Is(err, capture.ErrNoImage):
		return http.StatusConflict, msg
	case errors.Is(err, capture.ErrInvalidMethod), errors.Is(err, appcatalog.ErrInvalidFilter),
		errors.Is(err, media.ErrEmpty):
		return http.StatusBadRequest, msg
	case errors.Is(err, capture.ErrFlowNotFound), errors.Is(err, handoff.ErrNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound, msg
	case errors.Is(err, media.ErrNotImage), errors.Is(err, media.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, msg
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, msg
	case errors.Is(err, domai.ErrNotConfigured):
		return http.StatusServiceUnavailable, msg
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests, msg
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, msg
	case errors.Is(err, analysis.ErrMalformedResponse), errors.Is(err, analysis.ErrIncompleteResponse),
		errors.Is(err, analysis.ErrEmptyResponse), failure != nil:
		return http.StatusBadGateway, msg
	}
	return http.StatusInternalServerError, "internal server error"
}
