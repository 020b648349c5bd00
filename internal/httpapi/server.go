package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ent0n29/lexassist/internal/config"
	"github.com/ent0n29/lexassist/internal/conversation"
	"github.com/ent0n29/lexassist/internal/legal"
	"github.com/ent0n29/lexassist/internal/observability"
	"github.com/ent0n29/lexassist/internal/protocol"
	"github.com/ent0n29/lexassist/internal/resolver"
)

const maxQueryBodyBytes = 64 << 10

type Orchestrator interface {
	Respond(ctx context.Context, q resolver.Query) resolver.Answer
	History(ctx context.Context, userID string, n int) ([]conversation.Exchange, error)
}

type Server struct {
	cfg          config.Config
	orchestrator Orchestrator
	metrics      *observability.Metrics
	logger       *zap.Logger
	upgrader     websocket.Upgrader
}

func New(cfg config.Config, orchestrator Orchestrator, metrics *observability.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:          cfg,
		orchestrator: orchestrator,
		metrics:      metrics,
		logger:       logger.Named("httpapi"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Browsers may only connect from the serving origin unless explicitly opened up.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		s.metrics.Handler().ServeHTTP(w, r)
	})
	r.Get("/v1/perf/latency", s.handlePerfLatency)

	r.Post("/v1/legal/query", s.handleQuery)
	r.Get("/v1/legal/history/{userId}", s.handleHistory)
	r.Get("/v1/legal/ws", s.handleLegalWS)

	return r
}

// countRequests labels requests by route pattern so user IDs never become label values.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveHTTPRequest(route, status)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"inference_mode": s.cfg.InferenceMode,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.orchestrator == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "ready",
		"history_store": s.historyStoreMode(),
	})
}

type queryRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
	Persona string `json:"persona,omitempty"`
}

type queryResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		respondError(w, http.StatusServiceUnavailable, "unavailable", "orchestrator not configured")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodyBytes)

	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			respondError(w, http.StatusBadRequest, "missing_message", "message is required")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "missing_message", "message is required")
		return
	}

	answer := s.orchestrator.Respond(r.Context(), resolver.Query{
		UserID:  req.UserID,
		Message: req.Message,
		Persona: legal.ParsePersona(req.Persona),
	})
	respondJSON(w, http.StatusOK, queryResponse{Success: true, Response: answer.Text})
}

type historyResponse struct {
	UserID    string                  `json:"userId"`
	Exchanges []conversation.Exchange `json:"exchanges"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		respondError(w, http.StatusServiceUnavailable, "unavailable", "orchestrator not configured")
		return
	}
	userID := strings.TrimSpace(chi.URLParam(r, "userId"))
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	exchanges, err := s.orchestrator.History(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("history lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "history_unavailable", "history could not be loaded")
		return
	}
	if exchanges == nil {
		exchanges = []conversation.Exchange{}
	}
	respondJSON(w, http.StatusOK, historyResponse{UserID: userID, Exchanges: exchanges})
}

func (s *Server) handleLegalWS(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		respondError(w, http.StatusNotImplemented, "unavailable", "orchestrator not configured")
		return
	}
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	persona := legal.ParsePersona(strings.TrimSpace(r.URL.Query().Get("persona")))

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(maxQueryBodyBytes)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	if err := s.writeWS(conn, protocol.SystemEvent{Type: protocol.TypeSystemEvent, Code: "ready"}); err != nil {
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))

		var out any
		parsed, err := protocol.ParseClientMessage(data)
		switch msg := parsed.(type) {
		case protocol.ClientQuery:
			p := persona
			if msg.Persona != "" {
				p = legal.ParsePersona(msg.Persona)
			}
			answer := s.orchestrator.Respond(ctx, resolver.Query{UserID: userID, Message: msg.Message, Persona: p})
			out = protocol.Answer{Type: protocol.TypeAnswer, RequestID: msg.RequestID, Response: answer.Text}
		case protocol.ClientPing:
			out = protocol.Pong{Type: protocol.TypePong}
		default:
			detail := "unsupported message"
			if err != nil {
				detail = err.Error()
			}
			out = protocol.ErrorEvent{
				Type:   protocol.TypeErrorEvent,
				Code:   "invalid_client_message",
				Detail: detail,
			}
		}
		if err := s.writeWS(conn, out); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) writeWS(conn *websocket.Conn, msg any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(msg)
}

func (s *Server) historyStoreMode() string {
	if strings.TrimSpace(s.cfg.DatabaseURL) != "" {
		return "postgres"
	}
	return "in-memory"
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
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
	respondJSON(w, status, errorResponse{Success: false, Error: message, Code: code})
}
