// Package handler exposes the library services as named RPC commands over
// HTTP.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"lotuslab/internal/httputil"
	"lotuslab/internal/middleware"
)

// RPCHandler serves POST /rpc/{command}
type RPCHandler struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewRPCHandler creates a new RPC handler
func NewRPCHandler(dispatcher *Dispatcher, logger *slog.Logger) *RPCHandler {
	return &RPCHandler{dispatcher: dispatcher, logger: logger}
}

// NewRouter mounts the health check and the RPC endpoint.
func NewRouter(dispatcher *Dispatcher, logger *slog.Logger) http.Handler {
	h := NewRPCHandler(dispatcher, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.CleanPath)
	r.Use(middleware.Recovery(logger))

	r.Get("/health", h.Health)
	r.Post("/rpc/{command}", h.Call)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, http.StatusNotFound, CodeNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, http.StatusMethodNotAllowed, CodeInvalidInput, r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// Health reports liveness
// GET /health
func (h *RPCHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Call runs one command with the JSON object in the body as its arguments
// POST /rpc/{command}
func (h *RPCHandler) Call(w http.ResponseWriter, r *http.Request) {
	command := chi.URLParam(r, "command")

	body, err := httputil.ReadBody(w, r)
	if err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, CodeInvalidInput, err.Error())
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), command, body)
	if err != nil {
		handleError(w, h.logger.With("request_id", chimw.GetReqID(r.Context())), command, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
