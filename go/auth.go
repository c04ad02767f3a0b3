package courierserver

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/udea/couriersync/internal/shared/errors"
	"github.com/udea/couriersync/internal/shared/principal"
)

// Authenticator resolves a bearer token into the calling principal.
type Authenticator interface {
	VerifyToken(ctx context.Context, token string) (principal.Principal, error)
}

const principalKey = "principal"

// Authenticate requires a valid "Authorization: Bearer <token>" header and stores the
// principal on both the gin context and the request context.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			return
		}
		if auth == nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("authentication is not configured"))
			return
		}
		p, err := auth.VerifyToken(c.Request.Context(), token)
		if err != nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired token"))
			return
		}
		c.Set(principalKey, p)
		c.Request = c.Request.WithContext(principal.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// RequireRoles admits only callers holding one of roles. It must run after Authenticate.
func RequireRoles(roles ...principal.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := callerFrom(c)
		if !ok {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing principal"))
			return
		}
		if !slices.Contains(roles, p.Role) {
			respondProblem(c, apierrors.ErrForbidden.WithDetail("role "+p.Role.String()+" may not access this resource"))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func callerFrom(c *gin.Context) (principal.Principal, bool) {
	if value, exists := c.Get(principalKey); exists {
		if p, ok := value.(principal.Principal); ok && p.Role.Valid() {
			return p, true
		}
	}
	return principal.FromContext(c.Request.Context())
}

func callerRole(c *gin.Context) principal.Role {
	p, _ := callerFrom(c)
	return p.Role
}
