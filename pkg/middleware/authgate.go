package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumichat/lumichat/backend/auth-service/pkg/metrics"
)

// PrincipalKey is the gin context key under which the gate stores the
// verified session principal.
const PrincipalKey = "principal"

// Principal is a verified session subject as seen by request middleware.
type Principal struct {
	Subject    string
	Identifier string
	ExpiresAt  time.Time
}

// Verifier is the minimal interface the gate depends on
type Verifier interface {
	Verify(raw string) (Principal, error)
}

// AuthGate returns a Gin middleware that classifies each request path and
// enforces the route policy using the access-token cookie.
//
// protected + valid cookie    -> pass (principal stored in context)
// protected + absent/invalid  -> 302 to login with ?from=<original path>
// auth-only + valid cookie    -> 302 to the authenticated landing page
// auth-only + absent/invalid  -> pass
// public                      -> pass
//
// Every verification failure (missing cookie, malformed token, bad
// signature, expired) takes the same branch as an absent cookie.
func AuthGate(table RouteTable, cookieName string, ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		class := table.Classify(c.Request.URL.Path)
		if class == RoutePublic {
			c.Next()
			return
		}

		principal, ok := verifyCookie(c, cookieName, ver)

		switch class {
		case RouteProtected:
			if !ok {
				metrics.GateDecisions.WithLabelValues("redirect_login").Inc()
				target := table.LoginPath + "?from=" + url.QueryEscape(c.Request.URL.Path)
				c.Redirect(http.StatusFound, target)
				c.Abort()
				return
			}
			c.Set(PrincipalKey, principal)
			metrics.GateDecisions.WithLabelValues("allow").Inc()
			c.Next()
		case RouteAuthOnly:
			if ok {
				metrics.GateDecisions.WithLabelValues("redirect_landing").Inc()
				c.Redirect(http.StatusFound, table.LandingPath)
				c.Abort()
				return
			}
			metrics.GateDecisions.WithLabelValues("allow").Inc()
			c.Next()
		}
	}
}

func verifyCookie(c *gin.Context, cookieName string, ver Verifier) (Principal, bool) {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return Principal{}, false
	}
	p, err := ver.Verify(raw)
	if err != nil {
		return Principal{}, false
	}
	return p, true
}
