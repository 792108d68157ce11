package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domain "github.com/bryanwahyu/skinai/internal/domain/capture"
	"github.com/bryanwahyu/skinai/internal/domain/media"
	"github.com/bryanwahyu/skinai/internal/middleware"
)

// multipart overhead di atas batas gambar
const formOverhead = 1 << 20

func flowID(req *http.Request) (domain.FlowID, error) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateID("flow", id); err != nil {
		return "", badRequest{err.Error()}
	}
	return domain.FlowID(id), nil
}

func decodeBody(req *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest{fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

// POST /v1/flows
func (r *Router) handleStartFlow(w http.ResponseWriter, req *http.Request) error {
	f, err := r.capture.Start(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, f)
}

// GET /v1/flows/{id}
func (r *Router) handleGetFlow(w http.ResponseWriter, req *http.Request) error {
	id, err := flowID(req)
	if err != nil {
		return err
	}
	f, err := r.capture.Get(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, f)
}

// GET /v1/flows/{id}/image foto yang sedang dipegang flow (preview)
func (r *Router) handleFlowImage(w http.ResponseWriter, req *http.Request) error {
	id, err := flowID(req)
	if err != nil {
		return err
	}
	f, err := r.capture.Get(req.Context(), id)
	if err != nil {
		return err
	}
	if !f.HasImage() {
		return domain.ErrNoImage
	}
	w.Header().Set("Content-Type", f.Image.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	_, err = w.Write(f.Image.Data)
	return err
}

// POST /v1/flows/{id}/method {"method":"camera"|"upload"}
func (r *Router) handleSelectMethod(w http.ResponseWriter, req *http.Request) error {
	id, err := flowID(req)
	if err != nil {
		return err
	}
	var body struct {
		Method domain.Method `json:"method"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	f, err := r.capture.SelectMethod(req.Context(), id, body.Method)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, f)
}

// POST /v1/flows/{id}/permission {"granted":bool}
func (r *Router) handlePermission(w http.ResponseWriter, req *http.Request) error {
	id, err := flowID(req)
	if err != nil {
		return err
	}
	var body struct {
		Granted *bool `json:"granted"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if body.Granted == nil {
		return badRequest{"granted is required"}
	}
	f, err := r.capture.Permission(req.Context(), id, *body.Granted)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, f)
}

// POST /v1/flows/{id}/capture (multipart "image" atau raw body), ?mirror=true
func (r *Router) handleCapture(w http.ResponseWriter, req *http.Request) error {
	id, err := flowID(req)
	if err != nil {
		return err
	}
	mirror := false
	if v := req.URL.Query().Get("mirror"); v != "" {
		if mirror, err = strconv.ParseBool(v); err != nil {
			return badRequest{"mirror must be a boolean"}
		}
	}
	raw, contentType, err := r.readImage(w, req)
	if err != nil {
		return err
	}
	f, err := r.capture.Capture(req.Context(), id, raw, contentType, mirror)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, f)
}

// POST /v1/flows/{id}/upload (multipart "image")
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	id, err := flowID(req)
	if err != nil {
		return err
	}
	raw, contentType, err := r.readImage(w, req)
	if err != nil {
		return err
	}
	f, err := r.capture.Upload(req.Context(), id, raw, contentType)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, f)
}

// POST /v1/flows/{id}/analyze
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	id, err := flowID(req)
	if err != nil {
		return err
	}
	out, err := r.analysis.Analyze(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, out)
}

// flowAction handler untuk transisi tanpa body
func (r *Router) flowAction(fn func(context.Context, domain.FlowID) (*domain.Flow, error)) handlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		id, err := flowID(req)
		if err != nil {
			return err
		}
		f, err := fn(req.Context(), id)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, f)
	}
}

// readImage baca bytes gambar dari multipart field "image" atau raw body.
// Body dibaca maksimal maxUpload+1 supaya processor bisa menolak yang kebesaran.
func (r *Router) readImage(w http.ResponseWriter, req *http.Request) ([]byte, string, error) {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload+formOverhead)

	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		raw, err := io.ReadAll(io.LimitReader(req.Body, r.maxUpload+1))
		if err != nil {
			return nil, "", bodyError(err)
		}
		return raw, req.Header.Get("Content-Type"), nil
	}

	if err := req.ParseMultipartForm(r.maxUpload); err != nil {
		return nil, "", bodyError(err)
	}
	file, header, err := req.FormFile("image")
	if err != nil {
		return nil, "", badRequest{"image field is required"}
	}
	defer file.Close()
	raw, err := io.ReadAll(io.LimitReader(file, r.maxUpload+1))
	if err != nil {
		return nil, "", bodyError(err)
	}
	return raw, header.Header.Get("Content-Type"), nil
}

func bodyError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return fmt.Errorf("%w: request body over %d bytes", media.ErrTooLarge, tooBig.Limit)
	}
	return badRequest{fmt.Sprintf("read image: %v", err)}
}
