package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fake verifier: accepts exactly one raw token value
type fakeVerifier struct {
	valid string
}

func (f *fakeVerifier) Verify(raw string) (Principal, error) {
	if raw == f.valid {
		return Principal{Subject: "sub-1", Identifier: "user@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	return Principal{}, errors.New("invalid session token")
}

func gateEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthGate(defaultTable(), "access_token", &fakeVerifier{valid: "good-token"}))
	for _, p := range []string{"/chat", "/login", "/about"} {
		p := p
		r.GET(p, func(c *gin.Context) { c.String(http.StatusOK, "page "+p) })
	}
	return r
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *http.Response {
	req := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Result()
}

func TestGate_ProtectedWithoutCookieRedirects(t *testing.T) {
	resp := get(gateEngine(t), "/chat", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fchat", resp.Header.Get("Location"))
}

func TestGate_RedirectPreservesOriginalPath(t *testing.T) {
	resp := get(gateEngine(t), "/chat/threads", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fchat%2Fthreads", resp.Header.Get("Location"))
}

func TestGate_ProtectedWithValidCookiePasses(t *testing.T) {
	resp := get(gateEngine(t), "/chat", &http.Cookie{Name: "access_token", Value: "good-token"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// invalid, malformed or expired tokens take the same branch as no cookie
func TestGate_InvalidCookieBehavesLikeAbsent(t *testing.T) {
	resp := get(gateEngine(t), "/chat", &http.Cookie{Name: "access_token", Value: "tampered"})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fchat", resp.Header.Get("Location"))
}

func TestGate_AuthOnlyWithSessionRedirectsToLanding(t *testing.T) {
	resp := get(gateEngine(t), "/login", &http.Cookie{Name: "access_token", Value: "good-token"})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/chat", resp.Header.Get("Location"))
}

func TestGate_AuthOnlyWithoutSessionPasses(t *testing.T) {
	resp := get(gateEngine(t), "/login", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGate_PublicAlwaysPasses(t *testing.T) {
	r := gateEngine(t)
	assert.Equal(t, http.StatusOK, get(r, "/about", nil).StatusCode)
	assert.Equal(t, http.StatusOK, get(r, "/about", &http.Cookie{Name: "access_token", Value: "whatever"}).StatusCode)
}

func TestGate_StoresPrincipalForHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthGate(defaultTable(), "access_token", &fakeVerifier{valid: "good-token"}))
	r.GET("/chat", func(c *gin.Context) {
		v, ok := c.Get(PrincipalKey)
		if !ok {
			c.String(http.StatusInternalServerError, "no principal")
			return
		}
		c.String(http.StatusOK, v.(Principal).Identifier)
	})

	req := httptest.NewRequest("GET", "/chat", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "good-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@example.com", w.Body.String())
}
