// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	custom_errors "github.com/erclm/githubmetrics-supa/internal/errors"
	"github.com/erclm/githubmetrics-supa/internal/tracker"
)

// Handler is the container for API dependencies.
type Handler struct {
	tracker *tracker.Tracker
	logger  *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(trk *tracker.Tracker, logger *slog.Logger) http.Handler {
	h := &Handler{
		tracker: trk,
		logger:  logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/repositories", h.addRepository)
		r.Get("/repositories", h.listRepositories)
		r.Delete("/repositories/{id}", h.removeRepository)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// addRepositoryRequest is the body of POST /v1/repositories.
type addRepositoryRequest struct {
	URL string `json:"url"`
}

// addRepository runs the ingestion pipeline for a submitted repository URL.
// POST /v1/repositories
func (h *Handler) addRepository(w http.ResponseWriter, r *http.Request) {
	var req addRepositoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Request body must be JSON with a url field", err.Error())
		return
	}

	rec, err := h.tracker.AddRepository(r.Context(), req.URL)
	if err != nil {
		h.respondPipelineError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, rec)
}

// listRepositories returns all tracked repositories, newest first.
// GET /v1/repositories
func (h *Handler) listRepositories(w http.ResponseWriter, r *http.Request) {
	records, err := h.tracker.ListRepositories(r.Context())
	if err != nil {
		h.respondPipelineError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// removeRepository deletes a tracked repository by id.
// DELETE /v1/repositories/{id}
func (h *Handler) removeRepository(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Repository id must be an integer", err.Error())
		return
	}

	if err := h.tracker.RemoveRepository(r.Context(), id); err != nil {
		h.respondPipelineError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userFacing is implemented by every pipeline error type; it yields the
// short display message the error envelope carries next to the causal detail.
type userFacing interface {
	UserMessage() string
}

// respondPipelineError translates a pipeline failure into an HTTP response.
func (h *Handler) respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}

	message := "Something went wrong"
	var uf userFacing
	if errors.As(err, &uf) {
		message = uf.UserMessage()
	}
	respondWithError(w, status, message, err.Error())
}

// statusForError maps the pipeline error taxonomy onto HTTP status codes.
// URL validation failures are the client's fault, provider trouble is a bad
// gateway (except a provider 404, which passes through), and everything
// else, store failures included, is internal.
func statusForError(err error) int {
	var (
		invalidURL  *custom_errors.ErrInvalidURLFormat
		badHost     *custom_errors.ErrUnsupportedHost
		shortPath   *custom_errors.ErrIncompleteRepositoryPath
		provHTTP    *custom_errors.ErrProviderHTTP
		unreachable *custom_errors.ErrProviderUnreachable
	)

	switch {
	case errors.As(err, &invalidURL), errors.As(err, &badHost), errors.As(err, &shortPath):
		return http.StatusBadRequest
	case errors.As(err, &provHTTP):
		if provHTTP.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.As(err, &unreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
