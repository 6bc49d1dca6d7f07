package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumichat/lumichat/backend/auth-service/internal/config"
	"github.com/lumichat/lumichat/backend/auth-service/internal/cookies"
	"github.com/lumichat/lumichat/backend/auth-service/internal/tokens"
	"github.com/lumichat/lumichat/backend/auth-service/internal/users"
	"github.com/lumichat/lumichat/backend/auth-service/pkg/logger"
	"github.com/lumichat/lumichat/backend/auth-service/pkg/metrics"
)

// LoginRequest is the password login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
	tokenSvc *tokens.Service
	cookies  *cookies.Adapter
}

func NewAuthHandler(cfg *config.Config, u *users.Service, t *tokens.Service, ck *cookies.Adapter) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, tokenSvc: t, cookies: ck}
}

// Register routes. /api/login is an alias kept for older clients; both paths
// hit the one canonical login handler.
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	api := rg.Group("/api")
	api.POST("/login", h.Login)
	api.POST("/auth", h.Login)
	api.GET("/auth", h.CurrentUser)
	api.DELETE("/auth", h.Logout)
	api.POST("/auth/refresh", h.Refresh)
}

// Login checks the credential and, on success, sets the session cookie pair.
// Unknown identifier and wrong password produce the same 401 body so clients
// cannot enumerate accounts. Tokens travel in cookies only, never the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	cred, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"message": users.ErrInvalidCredentials.Error()})
			return
		}
		logger.Errorf("login: authenticate %q: %v", req.Email, err)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	access, err := h.tokenSvc.IssueAccess(cred, h.cfg.Auth.AccessTokenTTL)
	if err != nil {
		logger.Errorf("login: issue access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	refresh, err := h.tokenSvc.IssueRefresh(cred, h.cfg.Auth.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("login: issue refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	h.cookies.Write(c.Writer, access, refresh)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "logged in"})
}

// CurrentUser resolves the access-token cookie to the authenticated user.
// It never falls back to the refresh cookie; refresh is an explicit call.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	pair := h.cookies.Read(c.Request)
	if pair.Access == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	principal, err := h.tokenSvc.Verify(pair.Access)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	cred, err := h.usersSvc.GetBySubject(c.Request.Context(), principal.Subject)
	if err != nil {
		logger.Errorf("current user: lookup subject %q: %v", principal.Subject, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if cred == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": cred.SubjectID, "email": cred.Identifier}})
}

// Logout clears both session cookies unconditionally. Idempotent: a request
// with no prior session still gets 200 and the clearing headers.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Refresh verifies the refresh-token cookie and, when valid, reissues and
// rewrites the whole cookie pair. The pair is replaced wholesale.
func (h *AuthHandler) Refresh(c *gin.Context) {
	pair := h.cookies.Read(c.Request)
	if pair.Refresh == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	principal, err := h.tokenSvc.VerifyRefresh(pair.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	cred, err := h.usersSvc.GetBySubject(c.Request.Context(), principal.Subject)
	if err != nil {
		logger.Errorf("refresh: lookup subject %q: %v", principal.Subject, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if cred == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	access, err := h.tokenSvc.IssueAccess(cred, h.cfg.Auth.AccessTokenTTL)
	if err != nil {
		logger.Errorf("refresh: issue access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	refresh, err := h.tokenSvc.IssueRefresh(cred, h.cfg.Auth.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("refresh: issue refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	h.cookies.Write(c.Writer, access, refresh)
	c.JSON(http.StatusOK, gin.H{"message": "refreshed"})
}
