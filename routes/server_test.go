package routes

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diamondgarment/backend/middleware"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/websocket"
)

func withLogger(buf *bytes.Buffer) func(*Dependencies) {
	return func(d *Dependencies) {
		d.Logger = zerolog.New(buf)
	}
}

func logLine(t *testing.T, logs, msg string) string {
	t.Helper()
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, `"message":"`+msg+`"`) {
			return line
		}
	}
	t.Fatalf("no %q log line in:\n%s", msg, logs)
	return ""
}

func TestAccessLogOmitsQueryToken(t *testing.T) {
	var buf bytes.Buffer
	ts := newTestServer(t, Options{}, withLogger(&buf), func(d *Dependencies) {
		d.Hub = websocket.NewHub(nil)
	})
	ts.addUser(t, "admin@x.com", "secret", models.RoleAdmin)
	token := ts.login(t, "admin@x.com", "secret")
	buf.Reset()

	// Authenticates through the query string, then fails the upgrade since this is plain HTTP.
	ts.do(http.MethodGet, "/api/ws?since=5&token="+token, nil, "")

	logs := buf.String()
	assert.NotContains(t, logs, token)
	assert.Contains(t, logs, `"uri":"/api/ws?since=5"`)
}

func TestLoginLogsSessionOnce(t *testing.T) {
	var buf bytes.Buffer
	ts := newTestServer(t, Options{}, withLogger(&buf))
	ts.addUser(t, "admin@x.com", "secret", models.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@x.com","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.SessionHeader, "session_1700000000000_42")
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	line := logLine(t, buf.String(), "login succeeded")
	assert.Equal(t, 1, strings.Count(line, `"session_id"`), line)
	assert.Contains(t, line, `"session_id":"session_1700000000000_42"`)
}

func TestServerErrorDetail(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		message string
	}{
		{name: "hidden outside development", opts: Options{}, message: "Server Error"},
		{name: "hidden in production", opts: Options{Production: true}, message: "Server Error"},
		{name: "shown in development", opts: Options{Development: true}, message: "Server Error: connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.opts)
			ts.products.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

			rec := ts.do(http.MethodGet, "/api/products", nil, "")
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec)["message"])
		})
	}
}

func TestRateLimitUsesTrustedClientIP(t *testing.T) {
	login := func(ts *testServer, remoteAddr, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"nobody@x.com","password":"guess"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.RemoteAddr = remoteAddr
		if forwardedFor != "" {
			req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
		}
		rec := httptest.NewRecorder()
		ts.e.ServeHTTP(rec, req)
		return rec.Code
	}
	withLimiter := func(d *Dependencies) { d.RateLimiter = middleware.NewRateLimiter() }

	t.Run("rotating forwarded-for from an untrusted peer", func(t *testing.T) {
		ts := newTestServer(t, Options{}, withLimiter)
		for i := 0; i < 5; i++ {
			require.Equal(t, http.StatusUnauthorized, login(ts, "203.0.113.50:4000", fmt.Sprintf("198.51.100.%d", i)), "attempt %d", i+1)
		}
		assert.Equal(t, http.StatusTooManyRequests, login(ts, "203.0.113.50:4000", "198.51.100.99"))

		// A private-network proxy is trusted, so its forwarded client is a separate caller.
		assert.Equal(t, http.StatusUnauthorized, login(ts, "10.0.0.2:4000", "198.51.100.7"))
	})

	t.Run("configured proxy range", func(t *testing.T) {
		ts := newTestServer(t, Options{TrustedProxies: []string{"203.0.113.0/24", "not-a-cidr"}}, withLimiter)
		for i := 0; i < 8; i++ {
			assert.Equal(t, http.StatusUnauthorized, login(ts, "203.0.113.50:4000", fmt.Sprintf("198.51.100.%d", i)), "client %d", i)
		}
	})
}

func TestUploadChunkedBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, Options{})
	ts.addUser(t, "admin@x.com", "secret", models.RoleAdmin)
	token := ts.login(t, "admin@x.com", "secret")

	body, contentType := multipartImage(t, "huge.jpg", 7*1024*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	// No Content-Length, so the body limit only trips while the form is read.
	req.ContentLength = -1
	req.Header.Set(echo.HeaderContentType, contentType)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File too large. Max size is 5MB.", decode(t, rec)["message"])
	assert.Zero(t, ts.files.writes)
}
