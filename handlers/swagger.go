package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the auth service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>lumichat-auth — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document for the session endpoints. Tokens travel only in
// HttpOnly cookies, so no token fields appear in any response schema.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "lumichat-auth", "version": "v0.1.0" },
  "paths": {
    "/api/login": {
      "post": {
        "summary": "Password login; sets access_token and refresh_token cookies",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email","password"],"properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "cookies set" }, "401": { "description": "invalid email or password" } }
      }
    },
    "/api/auth": {
      "post": { "summary": "Alias of /api/login", "responses": { "200": { "description": "cookies set" }, "401": { "description": "invalid email or password" } } },
      "get": { "summary": "Current authenticated user", "responses": { "200": { "description": "user object" }, "401": { "description": "missing or invalid access cookie" } } },
      "delete": { "summary": "Logout; clears both session cookies", "responses": { "200": { "description": "cookies cleared" } } }
    },
    "/api/auth/refresh": {
      "post": { "summary": "Reissue the session cookie pair from the refresh cookie", "responses": { "200": { "description": "cookies replaced" }, "401": { "description": "missing or invalid refresh cookie" } } }
    }
  }
}`
