package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func healthRouter(checks map[string]ReadinessCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterHealth(r, time.Now(), checks)
	return r
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := getPath(healthRouter(nil), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())
}

func TestReady_AllChecksPass(t *testing.T) {
	r := healthRouter(map[string]ReadinessCheck{
		"credentials": func(context.Context) error { return nil },
		"redis":       func(context.Context) error { return nil },
	})
	w := getPath(r, "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
	assert.Contains(t, w.Body.String(), `"credentials":true`)
}

// a failing dependency check must flip both its own flag and the overall status
func TestReady_FailingCheckReturns503(t *testing.T) {
	r := healthRouter(map[string]ReadinessCheck{
		"credentials": func(context.Context) error { return errors.New("credential set is empty") },
		"redis":       func(context.Context) error { return nil },
	})
	w := getPath(r, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"not_ready"`)
	assert.Contains(t, w.Body.String(), `"credentials":false`)
	assert.Contains(t, w.Body.String(), `"redis":true`)
}

func TestReady_NoChecks(t *testing.T) {
	w := getPath(healthRouter(nil), "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
}
