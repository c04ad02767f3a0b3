package courierserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	clientsmemory "github.com/udea/couriersync/internal/domains/clients/adapters/memory"
	clientsapp "github.com/udea/couriersync/internal/domains/clients/application"
	dashboardapp "github.com/udea/couriersync/internal/domains/dashboard/application"
	shipmentsmemory "github.com/udea/couriersync/internal/domains/shipments/adapters/memory"
	shipmentsapp "github.com/udea/couriersync/internal/domains/shipments/application"
	usersmemory "github.com/udea/couriersync/internal/domains/users/adapters/memory"
	userssecurity "github.com/udea/couriersync/internal/domains/users/adapters/security"
	usersapp "github.com/udea/couriersync/internal/domains/users/application"
	usertypes "github.com/udea/couriersync/internal/domains/users/application/types"
	vehiclesmemory "github.com/udea/couriersync/internal/domains/vehicles/adapters/memory"
	vehiclesapp "github.com/udea/couriersync/internal/domains/vehicles/application"
	apierrors "github.com/udea/couriersync/internal/shared/errors"
	"github.com/udea/couriersync/internal/shared/principal"
)

const testPassword = "secret123"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testServer struct {
	router  *gin.Engine
	users   *usersapp.Service
	clients *clientsapp.Service
	tokens  map[principal.Role]string
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(context.Context, string) (bool, error) { return false, nil }
func (denyAllLimiter) Reset(context.Context, string) error       { return nil }

func newTestServer(t *testing.T, userOpts ...usersapp.Option) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := userssecurity.NewJWTIssuer(testSecret, "couriersync-test", time.Hour)
	require.NoError(t, err)
	users := usersapp.NewService(usersmemory.NewRepository(), userssecurity.NewBcryptHasher(bcrypt.MinCost), issuer, userOpts...)
	clients := clientsapp.NewService(clientsmemory.NewRepository())
	vehicles := vehiclesapp.NewService(vehiclesmemory.NewRepository())
	shipments := shipmentsapp.NewService(shipmentsmemory.NewRepository(), clients)
	dashboard := dashboardapp.NewService(shipments, clients, users)

	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		Authenticator: users,
		AuthAPI:       NewAuthAPI(users),
		ShipmentAPI:   NewShipmentAPI(shipmentsapp.NewGatekeeper(shipments)),
		ClientAPI:     NewClientAPI(clients),
		VehicleAPI:    NewVehicleAPI(vehicles),
		UserAPI:       NewUserAPI(users),
		DashboardAPI:  NewDashboardAPI(dashboard),
	})

	s := &testServer{router: router, users: users, clients: clients, tokens: map[principal.Role]string{}}
	for _, role := range []principal.Role{principal.RoleAdmin, principal.RoleOperator, principal.RoleDriver} {
		email := string(role) + "@couriersync.test"
		_, err := users.Create(context.Background(), usertypes.CreateUserInput{
			Name:     string(role),
			Email:    email,
			Password: testPassword,
			Role:     role,
		})
		require.NoError(t, err)
		token, _, err := issuer.Issue(principal.Principal{Email: email, Role: role, UserID: 1})
		require.NoError(t, err)
		s.tokens[role] = token
	}
	return s
}

func (s *testServer) do(t *testing.T, method, path string, role principal.Role, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[role])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seedClient(t *testing.T) int64 {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/clients", principal.RoleOperator, Client{Name: "Acme", Email: "ops@acme.test"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created Client
	decode(t, rec, &created)
	return created.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func requireProblem(t *testing.T, rec *httptest.ResponseRecorder, status int) apierrors.ProblemDetail {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	decode(t, rec, &problem)
	require.Equal(t, status, problem.Status)
	return problem
}
