package courierserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	usersapp "github.com/udea/couriersync/internal/domains/users/application"
	"github.com/udea/couriersync/internal/shared/principal"
)

func TestLogin_IssuesUsableToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "OPERATOR@couriersync.test", Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body LoginResponse
	decode(t, rec, &body)
	require.NotEmpty(t, body.AccessToken)

	s.tokens[principal.RoleOperator] = body.AccessToken
	rec = s.do(t, http.MethodGet, "/api/shipments", principal.RoleOperator, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_Failures(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "ADMIN@couriersync.test", Password: "wrong-password"})
	requireProblem(t, rec, http.StatusUnauthorized)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "x@y.z"})
	requireProblem(t, rec, http.StatusBadRequest)
}

func TestLogin_RateLimited(t *testing.T) {
	s := newTestServer(t, usersapp.WithLoginLimiter(denyAllLimiter{}))

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "ADMIN@couriersync.test", Password: testPassword})
	requireProblem(t, rec, http.StatusTooManyRequests)
}

func TestAuthenticate_RejectsMissingOrBadTokens(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/clients", "", nil)
	requireProblem(t, rec, http.StatusUnauthorized)

	s.tokens[principal.RoleDriver] = "not-a-jwt"
	rec = s.do(t, http.MethodGet, "/api/clients", principal.RoleDriver, nil)
	requireProblem(t, rec, http.StatusUnauthorized)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc")
	require.True(t, ok)
	require.Equal(t, "abc", token)

	_, ok = bearerToken("Basic abc")
	require.False(t, ok)
	_, ok = bearerToken("Bearer ")
	require.False(t, ok)
}

func TestRequireRoles_AdminOnlyRoutes(t *testing.T) {
	s := newTestServer(t)

	for _, role := range []principal.Role{principal.RoleOperator, principal.RoleDriver} {
		requireProblem(t, s.do(t, http.MethodGet, "/api/users", role, nil), http.StatusForbidden)
		requireProblem(t, s.do(t, http.MethodGet, "/api/dashboard/metrics", role, nil), http.StatusForbidden)
	}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/users", principal.RoleAdmin, nil).Code)
}
