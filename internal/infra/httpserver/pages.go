package httpserver

import (
	"errors"
	"net/http"

	appcatalog "github.com/bryanwahyu/skinai/internal/application/catalog"
	"github.com/bryanwahyu/skinai/internal/domain/handoff"
	"github.com/bryanwahyu/skinai/internal/middleware"
	"github.com/bryanwahyu/skinai/internal/web"
)

type errorPage struct {
	Title   string
	Message string
}

// page seperti wrap tapi error dirender sebagai HTML
func (r *Router) page(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		code, msg := statusFor(err)
		data := errorPage{Title: "Something went wrong", Message: msg}
		if errors.Is(err, handoff.ErrNotFound) {
			data = errorPage{
				Title:   "Results not available",
				Message: "Your results have expired or were never created. Please run a new analysis.",
			}
		}
		if code >= 500 {
			r.logger.Error("page failed", "path", req.URL.Path, "status", code, "error", err)
		}
		if rerr := r.pages.Render(w, code, "error", data); rerr != nil {
			r.logger.Error("render error page", "error", rerr)
			http.Error(w, msg, code)
		}
	}
}

func (r *Router) pageLanding(w http.ResponseWriter, req *http.Request) error {
	return r.pages.Render(w, http.StatusOK, "landing", nil)
}

func (r *Router) pageAnalysis(w http.ResponseWriter, req *http.Request) error {
	return r.pages.Render(w, http.StatusOK, "analysis", map[string]any{
		"AIConfigured": r.ai.HasAPIKey,
	})
}

func (r *Router) pageResults(w http.ResponseWriter, req *http.Request) error {
	id, err := handoffID(req)
	if err != nil {
		return handoff.ErrNotFound
	}
	e, err := r.analysis.Result(req.Context(), id)
	if err != nil {
		return err
	}
	recs, err := r.catalog.Recommend(req.Context(), e.Result, appcatalog.DefaultRecommendations)
	if err != nil {
		return err
	}
	return r.pages.Render(w, http.StatusOK, "results", web.BuildResultsView(e, recs))
}

func (r *Router) pageProducts(w http.ResponseWriter, req *http.Request) error {
	q := middleware.SanitizeQuery(req.URL.Query().Get("q"))
	skinType, err := middleware.ValidateSkinType(req.URL.Query().Get("skin_type"))
	if err != nil {
		return badRequest{err.Error()}
	}
	list, err := r.catalog.Search(req.Context(), q, skinType)
	if err != nil {
		return err
	}
	return r.pages.Render(w, http.StatusOK, "products", web.BuildProductsView(q, skinType, list))
}
