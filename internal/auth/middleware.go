package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/rs/zerolog/log"
)

const principalKey = "auth.principal"

// Authenticator resolves a bearer token to the principal it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

// Middleware rejects requests without a valid bearer token and stores the principal.
func Middleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, apperror.MsgUnauthorized)
			return
		}
		principal, err := a.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if apperror.Is(err, apperror.KindUnauthorized) {
				abort(c, http.StatusUnauthorized, apperror.MsgUnauthorized)
				return
			}
			log.Error().Err(err).Str("path", c.FullPath()).Msg("auth.Middleware: authentication failed")
			abort(c, http.StatusInternalServerError, apperror.MsgFailed)
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// Require lets the request through only if the principal holds every capability.
func Require(caps ...Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := FromContext(c)
		if !ok {
			abort(c, http.StatusUnauthorized, apperror.MsgUnauthorized)
			return
		}
		for _, cp := range caps {
			if !principal.Can(cp) {
				log.Warn().Uint("userID", principal.UserID).Str("role", principal.Role.String()).
					Str("capability", cp.String()).Msg("auth.Require: capability denied")
				abort(c, http.StatusForbidden, apperror.MsgForbidden)
				return
			}
		}
		c.Next()
	}
}

// FromContext returns the principal stored by Middleware.
func FromContext(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok && p != nil
}

// WithPrincipal attaches a principal; used by Middleware and tests.
func WithPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalKey, p)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.Response{Status: false, Message: message})
}
