package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kushi-chatbot/internal/chat"
	"kushi-chatbot/internal/common/config"
	"kushi-chatbot/internal/common/database"
	"kushi-chatbot/internal/common/logger"
	"kushi-chatbot/internal/common/observability"
	"kushi-chatbot/internal/ratelimit"
	"kushi-chatbot/internal/responder"
)

type chatLogger struct {
	logger.Logger
}

func (a *chatLogger) With(fields map[string]interface{}) chat.Logger {
	return &chatLogger{a.Logger.With(fields)}
}

func testConfig(origins ...string) *config.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, ReadTimeout: 1000, WriteTimeout: 1000},
		Chat:   config.ChatConfig{MaxBodyBytes: 1024},
		CORS:   config.CORSConfig{AllowedOrigins: origins},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, redis Pinger) *Server {
	t.Helper()
	log := logger.NewTestLogger(t)
	h := chat.NewHandler(chat.LoadConfig(cfg), responder.New(), ratelimit.Noop{}, observability.NewNoop(), &chatLogger{log})
	return New(cfg, h, redis, log)
}

func do(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	rec := do(s, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	_, err := time.Parse(time.RFC3339, body["time"])
	assert.NoError(t, err)
}

func TestReady(t *testing.T) {
	t.Run("no redis", func(t *testing.T) {
		s := newTestServer(t, testConfig(), nil)
		rec := do(s, http.MethodGet, "/ready", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ready"`)
	})

	t.Run("redis up then down", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(mr.Close)

		rc, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = rc.Close() })

		s := newTestServer(t, testConfig(), rc)
		assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/ready", "", nil).Code)

		mr.Close()
		rec := do(s, http.MethodGet, "/ready", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unavailable"`)
	})
}

func TestChatRoutes(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	want := responder.New().Answer("what are your timings")

	for _, path := range []string{chat.RouteChat, chat.RouteQuery} {
		rec := do(s, http.MethodPost, path, `{"message":"what are your timings"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var resp chat.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, want, resp.Reply)
	}

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodPost, "/unknown", `{}`, nil).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	do(s, http.MethodPost, chat.RouteChat, `{"message":"hello"}`, nil)

	rec := do(s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chat_replies_total")
}

func TestCORS(t *testing.T) {
	t.Run("wildcard preflight", func(t *testing.T) {
		s := newTestServer(t, testConfig(), nil)
		rec := do(s, http.MethodOptions, chat.RouteChat, "", map[string]string{"Origin": "https://example.com"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	})

	t.Run("allow list", func(t *testing.T) {
		s := newTestServer(t, testConfig("https://kushiservices.com"), nil)

		rec := do(s, http.MethodPost, chat.RouteQuery, `{"message":"hi"}`, map[string]string{"Origin": "https://kushiservices.com"})
		assert.Equal(t, "https://kushiservices.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))

		rec = do(s, http.MethodPost, chat.RouteQuery, `{"message":"hi"}`, map[string]string{"Origin": "https://evil.example"})
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestStartShutdown(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
