//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/udea/couriersync/test/pact"

	courierserver "github.com/udea/couriersync/go"
	clientsmemory "github.com/udea/couriersync/internal/domains/clients/adapters/memory"
	clientsapp "github.com/udea/couriersync/internal/domains/clients/application"
	clientdomain "github.com/udea/couriersync/internal/domains/clients/domain"
	dashboardapp "github.com/udea/couriersync/internal/domains/dashboard/application"
	shipmentsmemory "github.com/udea/couriersync/internal/domains/shipments/adapters/memory"
	shipmentsobs "github.com/udea/couriersync/internal/domains/shipments/adapters/observability"
	shipmentsworkflows "github.com/udea/couriersync/internal/domains/shipments/adapters/workflows"
	shipmentsapp "github.com/udea/couriersync/internal/domains/shipments/application"
	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	usersmemory "github.com/udea/couriersync/internal/domains/users/adapters/memory"
	userobs "github.com/udea/couriersync/internal/domains/users/adapters/observability"
	userssecurity "github.com/udea/couriersync/internal/domains/users/adapters/security"
	usersapp "github.com/udea/couriersync/internal/domains/users/application"
	usertypes "github.com/udea/couriersync/internal/domains/users/application/types"
	vehiclesmemory "github.com/udea/couriersync/internal/domains/vehicles/adapters/memory"
	vehiclesapp "github.com/udea/couriersync/internal/domains/vehicles/application"
	"github.com/udea/couriersync/internal/shared/principal"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCourierSyncProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateShipmentExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedShipment(t)
			}
			return nil, nil
		},
		pacttest.StateShipmentMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateOperatorAccount: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedOperator(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp rebuilds its in-memory stack on every state change so ids start at 1.
type contractProviderApp struct {
	mu        sync.RWMutex
	router    http.Handler
	shipments *shipmentsapp.Service
	clients   *clientsapp.Service
	users     *usersapp.Service
	server    *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	clients := clientsapp.NewService(clientsmemory.NewRepository())
	shipments := shipmentsapp.NewService(
		shipmentsmemory.NewRepository(),
		clients,
		shipmentsapp.WithTrackingCodeGenerator(func() (string, error) { return pacttest.ExampleTrackingCode, nil }),
	)
	shipmentService := shipmentsobs.New(shipments)
	users := usersapp.NewService(usersmemory.NewRepository(), userssecurity.NewBcryptHasher(bcrypt.MinCost), pacttest.NewTokenIssuer(t))
	userService := userobs.New(users)
	vehicles := vehiclesapp.NewService(vehiclesmemory.NewRepository())

	gate := shipmentsapp.NewGatekeeper(shipmentService, shipmentsapp.WithWorkflows(shipmentsworkflows.NewInlineShipmentWorkflows(shipmentService)))
	handlers := courierserver.ApiHandleFunctions{
		Authenticator: userService,
		AuthAPI:       courierserver.NewAuthAPI(userService),
		ShipmentAPI:   courierserver.NewShipmentAPI(gate),
		ClientAPI:     courierserver.NewClientAPI(clients),
		VehicleAPI:    courierserver.NewVehicleAPI(vehicles),
		UserAPI:       courierserver.NewUserAPI(userService),
		DashboardAPI:  courierserver.NewDashboardAPI(dashboardapp.NewService(shipmentService, clients, userService)),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = courierserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.router = router
	a.shipments = shipments
	a.clients = clients
	a.users = users
}

func (a *contractProviderApp) seedShipment(t testing.TB) {
	t.Helper()
	ctx := principal.WithRole(context.Background(), principal.RoleAdmin)
	client, err := a.clients.Create(ctx, &clientdomain.Client{Name: "Pact Logistics", Email: "ops@courier.pact"})
	require.NoError(t, err)
	created, err := a.shipments.CreateShipment(ctx, &shipmenttypes.CreateShipmentInput{
		ClientID:     client.ID,
		Status:       domain.StatusPending,
		Priority:     domain.PriorityHigh,
		Observations: "fragile",
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingShipmentID, created.Entity.ID)
}

func (a *contractProviderApp) seedOperator(t testing.TB) {
	t.Helper()
	_, err := a.users.Create(context.Background(), usertypes.CreateUserInput{
		Name:     "Pact Operator",
		Email:    pacttest.OperatorEmail,
		Password: pacttest.OperatorPassword,
		Role:     principal.RoleOperator,
	})
	require.NoError(t, err)
}
