// Package httpapi serves the dialogue over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/observability"
	"github.com/sandevgo/raider/internal/service/dialogue"
	"github.com/sandevgo/raider/pkg/log"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("empty request body")

type Config interface {
	GetBindAddr() string
	GetReadTimeout() time.Duration
	GetWriteTimeout() time.Duration
}

type Server struct {
	cfg      Config
	dialogue core.Dialogue
	history  core.TurnStore
	metrics  *observability.Metrics
	srv      *http.Server
}

func New(cfg Config, dlg core.Dialogue, history core.TurnStore, metrics *observability.Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		dialogue: dlg,
		history:  history,
		metrics:  metrics,
	}
	s.srv = &http.Server{
		Addr:              cfg.GetBindAddr(),
		Handler:           s.Router(),
		ReadTimeout:       cfg.GetReadTimeout(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.GetWriteTimeout(),
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestContext)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	// Wire format of the original chat client.
	r.Post("/AI/Communicate", s.handleCommunicate)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/respond", s.handleRespond)
		r.Get("/subjects", s.handleListSubjects)
		r.Get("/subjects/{subject}/turns", s.handleListTurns)
	})

	return r
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx).With().Str("component", "http").Logger()

	s.srv.BaseContext = func(net.Listener) context.Context { return logger.WithContext(ctx) }

	logger.Info().Str("addr", s.cfg.GetBindAddr()).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type communicateRequest struct {
	Prompt  string `json:"prompt"`
	Subject string `json:"subject"`
}

type communicateResponse struct {
	PromptResponse string `json:"prompt_response"`
}

type respondRequest struct {
	Subject     string `json:"subject"`
	UserText    string `json:"user_text"`
	Description string `json:"description,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// PromptResponse lets the original chat client show the failure as a reply.
	PromptResponse string `json:"prompt_response,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": core.AppVersion,
	})
}

func (s *Server) handleCommunicate(w http.ResponseWriter, r *http.Request) {
	var req communicateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		msg := "Error: " + err.Error()
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_request", PromptResponse: msg})
		return
	}

	reply, err := s.dialogue.Respond(r.Context(), core.Request{Subject: req.Subject, UserText: req.Prompt})
	if err != nil {
		status, code := classify(err)
		respondJSON(w, status, errorResponse{Error: err.Error(), Code: code, PromptResponse: "Error: " + err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, communicateResponse{PromptResponse: reply.Text})
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	reply, err := s.dialogue.Respond(r.Context(), core.Request{
		Subject:     req.Subject,
		UserText:    req.UserText,
		Description: req.Description,
	})
	if err != nil {
		status, code := classify(err)
		respondError(w, status, code, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleListTurns(w http.ResponseWriter, r *http.Request) {
	subject, err := dialogue.ValidateSubject(chi.URLParam(r, "subject"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	turns, err := s.history.Load(r.Context(), subject)
	if err != nil {
		status, code := classify(err)
		respondError(w, status, code, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"subject": subject,
		"turns":   turns,
	})
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	lister, ok := s.history.(core.SubjectLister)
	if !ok {
		respondError(w, http.StatusNotImplemented, "unsupported", "turn store cannot list subjects")
		return
	}

	subjects, err := lister.Subjects(r.Context())
	if err != nil {
		status, code := classify(err)
		respondError(w, status, code, err.Error())
		return
	}
	if subjects == nil {
		subjects = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}

// requestContext tags every request with an id, puts a request scoped logger
// into the context and records metrics under the matched route.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := log.WithFields(r.Context(), "request_id", id)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		if s.metrics != nil {
			s.metrics.ObserveHTTP(route, status, time.Since(started))
		}
		log.FromCtx(ctx).Debug().
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("took", time.Since(started)).
			Msg("http request")
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, core.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "cancelled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
