package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHealthz(t *testing.T) {
	s := NewServer(":0", zaptest.NewLogger(t), nil)

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	ok := CheckerFunc(func(ctx context.Context) error { return nil })
	down := CheckerFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	t.Run("all checks pass", func(t *testing.T) {
		s := NewServer(":0", zaptest.NewLogger(t), map[string]Checker{"database": ok, "cache": ok})

		rec := httptest.NewRecorder()
		s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("a failing check", func(t *testing.T) {
		s := NewServer(":0", zaptest.NewLogger(t), map[string]Checker{"database": ok, "cache": down})

		rec := httptest.NewRecorder()
		s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body.Status)
		assert.Equal(t, "ok", body.Checks["database"])
		assert.Equal(t, "connection refused", body.Checks["cache"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(":0", zaptest.NewLogger(t), nil)

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
