// internal/chat/handler.go
package chat

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	apperrors "kushi-chatbot/internal/common/errors"
	"kushi-chatbot/internal/common/metrics"
	"kushi-chatbot/internal/common/observability"
	"kushi-chatbot/internal/common/validation"
	"kushi-chatbot/internal/ratelimit"
	"kushi-chatbot/internal/responder"
)

const (
	RouteChat  = "/chat"
	RouteQuery = "/api/chatbot/query"

	RequestIDHeader = "X-Request-ID"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	config    *Config
	responder *responder.Responder
	validator *validation.Validator
	limiter   ratelimit.Limiter
	obs       *observability.Observability
	errors    *apperrors.ErrorHandler
	logger    Logger
}

func NewHandler(config *Config, resp *responder.Responder, limiter ratelimit.Limiter, obs *observability.Observability, log Logger) *Handler {
	log = log.With(map[string]interface{}{
		"component": "chat",
	})
	return &Handler{
		config:    config,
		responder: resp,
		validator: validation.MustChatRequestValidator(),
		limiter:   limiter,
		obs:       obs,
		errors:    apperrors.NewErrorHandler(log),
		logger:    log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		writeJSON(w, http.StatusOK, PreflightResponse{Status: "ok"})
		return
	case http.MethodPost:
	default:
		h.reject(w, r, apperrors.NewMethodNotAllowedError(r.Method))
		return
	}

	start := time.Now()
	metrics.ChatRequestsActive.Inc()
	defer metrics.ChatRequestsActive.Dec()

	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	client := clientIP(r)
	log := h.logger.With(map[string]interface{}{
		"requestId": requestID,
		"client":    client,
	})

	ctx := r.Context()
	allowed, err := h.limiter.Allow(ctx, client)
	if err != nil {
		stdErr := apperrors.NewRateLimitCheckFailedError(err)
		log.Warn("rate limit check failed, allowing request", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		allowed = true
	}
	if !allowed {
		h.reject(w, r, apperrors.NewRateLimitedError(client, h.config.RetryAfter))
		return
	}

	message := h.readMessage(w, r, log)

	_, span := h.obs.StartSpan(ctx, "responder.Classify")
	reply := h.responder.Classify(message)
	span.SetAttributes(
		attribute.String("chat.rule", string(reply.Rule)),
		attribute.Int("chat.message_length", len(message)),
	)
	span.End()

	elapsed := time.Since(start)
	metrics.ChatRepliesTotal.WithLabelValues(string(reply.Rule)).Inc()
	metrics.ChatRequestDuration.WithLabelValues(r.URL.Path).Observe(elapsed.Seconds())
	h.obs.RecordReply(ctx, string(reply.Rule))
	h.obs.RecordReplyDuration(ctx, elapsed, string(reply.Rule))

	log.Info("chat reply", map[string]interface{}{
		"route":         r.URL.Path,
		"rule":          string(reply.Rule),
		"messageLength": len(message),
		"durationMs":    elapsed.Milliseconds(),
	})

	writeJSON(w, http.StatusOK, Response{Reply: reply.Text})
}

// readMessage returns the "message" field of the body. Anything that is not a
// JSON object with a string message yields "".
func (h *Handler) readMessage(w http.ResponseWriter, r *http.Request, log Logger) string {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes))
	if err != nil {
		h.malformed(log, apperrors.NewInvalidRequestBodyError(err.Error()))
		return ""
	}

	result := h.validator.Validate(raw)
	if !result.Valid {
		details := ""
		if len(result.Errors) > 0 {
			details = result.Errors[0].Field + ": " + result.Errors[0].Message
		}
		h.malformed(log, apperrors.NewInvalidRequestBodyError(details))
		return ""
	}

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		h.malformed(log, apperrors.NewInvalidRequestBodyError(err.Error()))
		return ""
	}
	return req.Message
}

func (h *Handler) malformed(log Logger, stdErr *apperrors.StandardError) {
	metrics.ChatMalformedBodies.Inc()
	log.Warn("malformed chat body, answering as empty message", map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	})
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, stdErr *apperrors.StandardError) {
	metrics.ChatRequestsRejected.WithLabelValues(string(stdErr.Code)).Inc()
	h.errors.WriteHTTPError(w, r, stdErr)
}

// clientIP prefers the first X-Forwarded-For hop, then the remote address host.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
