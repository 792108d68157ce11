package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appcatalog "github.com/bryanwahyu/skinai/internal/application/catalog"
	"github.com/bryanwahyu/skinai/internal/domain/catalog"
	"github.com/bryanwahyu/skinai/internal/domain/handoff"
	"github.com/bryanwahyu/skinai/internal/middleware"
)

func handoffID(req *http.Request) (handoff.EntryID, error) {
	id := chi.URLParam(req, "handoff")
	if err := middleware.ValidateID("handoff", id); err != nil {
		return "", badRequest{err.Error()}
	}
	return handoff.EntryID(id), nil
}

// GET /v1/results/{handoff}
func (r *Router) handleResult(w http.ResponseWriter, req *http.Request) error {
	id, err := handoffID(req)
	if err != nil {
		return err
	}
	e, err := r.analysis.Result(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, e)
}

// DELETE /v1/results/{handoff}
func (r *Router) handleDiscard(w http.ResponseWriter, req *http.Request) error {
	id, err := handoffID(req)
	if err != nil {
		return err
	}
	if err := r.analysis.Discard(req.Context(), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/results/{handoff}/image
func (r *Router) handleResultImage(w http.ResponseWriter, req *http.Request) error {
	id, err := handoffID(req)
	if err != nil {
		return err
	}
	data, contentType, err := r.analysis.SourceImage(req.Context(), id)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, no-store")
	_, err = w.Write(data)
	return err
}

// GET /v1/results/{handoff}/recommendations?limit=4
func (r *Router) handleRecommendations(w http.ResponseWriter, req *http.Request) error {
	id, err := handoffID(req)
	if err != nil {
		return err
	}
	e, err := r.analysis.Result(req.Context(), id)
	if err != nil {
		return err
	}
	limit := middleware.ValidateLimit(req.URL.Query().Get("limit"), appcatalog.DefaultRecommendations)
	recs, err := r.catalog.Recommend(req.Context(), e.Result, limit)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, recs)
}

// GET /v1/products?q=&skin_type=
func (r *Router) handleProducts(w http.ResponseWriter, req *http.Request) error {
	q := middleware.SanitizeQuery(req.URL.Query().Get("q"))
	skinType, err := middleware.ValidateSkinType(req.URL.Query().Get("skin_type"))
	if err != nil {
		return badRequest{err.Error()}
	}
	list, err := r.catalog.Search(req.Context(), q, skinType)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/products/{id}
func (r *Router) handleProduct(w http.ResponseWriter, req *http.Request) error {
	n, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil || n <= 0 {
		return badRequest{"invalid product id"}
	}
	p, err := r.catalog.Get(req.Context(), catalog.ProductID(n))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, p)
}
