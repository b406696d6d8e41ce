package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/infrastructure/auth"
	"github.com/projops/backend/internal/infrastructure/logger"
	"github.com/projops/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	PrincipalKey  = "principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
}

// DefaultAuthConfig returns the default authentication configuration
func DefaultAuthConfig(jwtService *auth.JWTService) AuthConfig {
	return AuthConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
		},
	}
}

// Authentication validates the bearer token and stores the principal it
// carries in the request context. Every handler reads the principal from
// here and passes it down explicitly; nothing below the transport layer
// resolves identity on its own.
func Authentication(jwtService *auth.JWTService) gin.HandlerFunc {
	return AuthenticationWithConfig(DefaultAuthConfig(jwtService))
}

// AuthenticationWithConfig validates bearer tokens with custom configuration
func AuthenticationWithConfig(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		principal, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(PrincipalKey, principal)

		// Propagate identity into the request context for log enrichment
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, log = logger.WithUserID(ctx, log, principal.UserID.String())
		ctx, _ = logger.WithTenantID(ctx, log, principal.TenantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// abortUnauthorized rejects the request with a 401 response
func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrCodeTokenInvalid
	message := "Invalid token"
	switch err {
	case auth.ErrExpiredToken:
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case auth.ErrInvalidClaims:
		message = "Invalid token claims"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetPrincipal retrieves the authenticated principal from gin.Context
func GetPrincipal(c *gin.Context) (shared.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return shared.Principal{}, false
	}
	principal, ok := value.(shared.Principal)
	return principal, ok
}
