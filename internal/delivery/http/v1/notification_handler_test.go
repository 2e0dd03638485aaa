package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/middleware"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/response"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/usecase"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/email"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/logger"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSender records every delivered message and can be programmed to fail.
type stubSender struct {
	mu   sync.Mutex
	sent []email.Message
	fail func(msg email.Message) error
}

func (s *stubSender) Send(_ context.Context, msg email.Message) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		if err := s.fail(msg); err != nil {
			return nil, err
		}
	}
	s.sent = append(s.sent, msg)
	return json.RawMessage(`{"id":"stub-email-id"}`), nil
}

func (s *stubSender) messages() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]email.Message, len(s.sent))
	copy(out, s.sent)
	return out
}

// newEmailRouter wires the public email route the way the real router does,
// minus the database-backed admin surface.
func newEmailRouter(sender email.Sender, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Init()

	r := gin.New()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	group := r.Group("/v1")
	limiter := ratelimit.NewFixedWindowLimiter(limit, time.Hour, 100, nil)
	public := group.Group("")
	public.Use(middleware.RateLimitMiddleware(
		middleware.EmailRateLimitConfig(limit, time.Hour),
		limiter,
	))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewNotificationUsecase(sender, "AlmondSense <onboarding@resend.dev>", "", log)
	NewNotificationHandler(public, uc)

	return r
}

func postEmail(r *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/send-email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var env response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestSendEmailContactConfirmation(t *testing.T) {
	sender := &stubSender{}
	r := newEmailRouter(sender, 10)

	w := postEmail(r, `{
		"type": "contact",
		"name": "Ana",
		"email": "ana@example.com",
		"phone": "0812345678",
		"service": "Land Clearing"
	}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)

	msgs := sender.messages()
	require.Len(t, msgs, 1, "no admin alert without adminEmail")
	assert.Equal(t, []string{"ana@example.com"}, msgs[0].To)
	assert.Equal(t, "Terima Kasih atas Pengajuan Anda - Land Clearing", msgs[0].Subject)
	assert.Contains(t, msgs[0].HTML, "Ana")
	assert.Contains(t, msgs[0].HTML, "Land Clearing")
}

func TestSendEmailAdminAlertFollowsConfirmation(t *testing.T) {
	sender := &stubSender{}
	r := newEmailRouter(sender, 10)

	w := postEmail(r, `{
		"type": "contact",
		"name": "Budi",
		"email": "budi@example.com",
		"phone": "0812345678",
		"service": "Survey",
		"adminEmail": "admin@example.com"
	}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{"budi@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"admin@example.com"}, msgs[1].To)
	assert.Equal(t, "[Pengajuan Baru] Survey - Budi", msgs[1].Subject)
}

func TestSendEmailInvalidAdminEmailSkipsAlert(t *testing.T) {
	sender := &stubSender{}
	r := newEmailRouter(sender, 10)

	w := postEmail(r, `{
		"type": "contact",
		"name": "Budi",
		"email": "budi@example.com",
		"phone": "0812345678",
		"service": "Survey",
		"adminEmail": "not-an-address"
	}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	require.Len(t, sender.messages(), 1, "invalid admin address must not be attempted")
}

func TestSendEmailMissingFieldsRejected(t *testing.T) {
	sender := &stubSender{}
	r := newEmailRouter(sender, 10)

	w := postEmail(r, `{
		"type": "contact",
		"name": "Ana",
		"email": "ana@example.com",
		"phone": "0812345678"
	}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Missing required fields: name, email, phone, service", env.Error)
	assert.Empty(t, sender.messages(), "rejected request must not deliver anything")
}

func TestSendEmailUnknownTypeRejected(t *testing.T) {
	sender := &stubSender{}
	r := newEmailRouter(sender, 10)

	w := postEmail(r, `{"type": "newsletter", "email": "x@example.com"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Invalid email type", env.Error)
	assert.Empty(t, sender.messages())
}

func TestSendEmailDeliveryFailureSurfaces(t *testing.T) {
	sender := &stubSender{fail: func(email.Message) error {
		return fmt.Errorf("Resend API error: %s", `{"message":"invalid api key"}`)
	}}
	r := newEmailRouter(sender, 10)

	w := postEmail(r, `{
		"type": "welcome",
		"name": "Ana",
		"email": "ana@example.com"
	}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "Resend API error")
}

func TestSendEmailRateLimitPerClient(t *testing.T) {
	sender := &stubSender{}
	r := newEmailRouter(sender, 10)

	body := `{
		"type": "contact",
		"name": "Ana",
		"email": "ana@example.com",
		"phone": "0812345678",
		"service": "Land Clearing"
	}`
	headers := map[string]string{"X-Forwarded-For": "1.2.3.4"}

	for i := 0; i < 10; i++ {
		w := postEmail(r, body, headers)
		require.Equal(t, http.StatusOK, w.Code, "request %d should be admitted", i+1)
	}

	w := postEmail(r, body, headers)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Too many requests. Please try again later.", env.Error)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// A different client is unaffected.
	w = postEmail(r, body, map[string]string{"X-Forwarded-For": "5.6.7.8"})
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, sender.messages(), 11, "the rejected request must not reach the sender")
}

func TestSendEmailRateLimitKeyDerivation(t *testing.T) {
	sender := &stubSender{}
	r := newEmailRouter(sender, 1)

	body := `{"to": "x@example.com", "subject": "hi", "text": "hello"}`

	// First hop of X-Forwarded-For wins even with a proxy chain.
	w := postEmail(r, body, map[string]string{"X-Forwarded-For": "9.9.9.9, 10.0.0.1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = postEmail(r, body, map[string]string{"X-Forwarded-For": "9.9.9.9, 172.16.0.1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// CF-Connecting-IP is the fallback when no forwarded header is present.
	w = postEmail(r, body, map[string]string{"CF-Connecting-IP": "2.2.2.2"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Unidentifiable clients share one bucket.
	w = postEmail(r, body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = postEmail(r, body, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestPreflightShortCircuits(t *testing.T) {
	sender := &stubSender{}
	r := newEmailRouter(sender, 1)

	req := httptest.NewRequest(http.MethodOptions, "/v1/send-email", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "x-client-info")
	assert.Empty(t, sender.messages())

	// Preflight must not consume rate-limit quota.
	body := `{"to": "x@example.com", "subject": "hi", "text": "hello"}`
	resp := postEmail(r, body, map[string]string{"X-Forwarded-For": "1.2.3.4"})
	assert.Equal(t, http.StatusOK, resp.Code)
}
