package courierserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udea/couriersync/internal/shared/principal"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Public routes are served without a bearer token.
	Public bool
	// Roles restricts the route to the listed roles. Empty admits any authenticated caller.
	Roles []principal.Role
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	authenticate := Authenticate(handleFunctions.Authenticator)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := make([]gin.HandlerFunc, 0, 3)
		if !route.Public {
			chain = append(chain, authenticate)
			if len(route.Roles) > 0 {
				chain = append(chain, RequireRoles(route.Roles...))
			}
		}
		chain = append(chain, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler bound.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Authenticator verifies bearer tokens for every non-public route.
	Authenticator Authenticator

	// Routes for the auth part of the API
	AuthAPI AuthAPI
	// Routes for the shipments part of the API
	ShipmentAPI ShipmentAPI
	// Routes for the clients part of the API
	ClientAPI ClientAPI
	// Routes for the vehicles part of the API
	VehicleAPI VehicleAPI
	// Routes for the users part of the API
	UserAPI UserAPI
	// Routes for the dashboard part of the API
	DashboardAPI DashboardAPI
}

var adminOnly = []principal.Role{principal.RoleAdmin}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "Login",
			Method:      http.MethodPost,
			Pattern:     "/api/auth/login",
			HandlerFunc: handleFunctions.AuthAPI.Login,
			Public:      true,
		},
		{
			Name:        "ListShipments",
			Method:      http.MethodGet,
			Pattern:     "/api/shipments",
			HandlerFunc: handleFunctions.ShipmentAPI.ListShipments,
		},
		{
			Name:        "GetShipmentById",
			Method:      http.MethodGet,
			Pattern:     "/api/shipments/:id",
			HandlerFunc: handleFunctions.ShipmentAPI.GetShipmentById,
		},
		{
			Name:        "GetShipmentByTrackingCode",
			Method:      http.MethodGet,
			Pattern:     "/api/shipments/tracking/:code",
			HandlerFunc: handleFunctions.ShipmentAPI.GetShipmentByTrackingCode,
		},
		{
			Name:        "CreateShipment",
			Method:      http.MethodPost,
			Pattern:     "/api/shipments",
			HandlerFunc: handleFunctions.ShipmentAPI.CreateShipment,
		},
		{
			Name:        "UpdateShipment",
			Method:      http.MethodPut,
			Pattern:     "/api/shipments/:id",
			HandlerFunc: handleFunctions.ShipmentAPI.UpdateShipment,
		},
		{
			Name:        "UpdateShipmentStatus",
			Method:      http.MethodPut,
			Pattern:     "/api/shipments/:id/status",
			HandlerFunc: handleFunctions.ShipmentAPI.UpdateShipmentStatus,
		},
		{
			Name:        "DeleteShipment",
			Method:      http.MethodDelete,
			Pattern:     "/api/shipments/:id",
			HandlerFunc: handleFunctions.ShipmentAPI.DeleteShipment,
		},
		{
			Name:        "ListClients",
			Method:      http.MethodGet,
			Pattern:     "/api/clients",
			HandlerFunc: handleFunctions.ClientAPI.ListClients,
		},
		{
			Name:        "GetClientById",
			Method:      http.MethodGet,
			Pattern:     "/api/clients/:id",
			HandlerFunc: handleFunctions.ClientAPI.GetClientById,
		},
		{
			Name:        "CreateClient",
			Method:      http.MethodPost,
			Pattern:     "/api/clients",
			HandlerFunc: handleFunctions.ClientAPI.CreateClient,
		},
		{
			Name:        "UpdateClient",
			Method:      http.MethodPut,
			Pattern:     "/api/clients/:id",
			HandlerFunc: handleFunctions.ClientAPI.UpdateClient,
		},
		{
			Name:        "DeleteClient",
			Method:      http.MethodDelete,
			Pattern:     "/api/clients/:id",
			HandlerFunc: handleFunctions.ClientAPI.DeleteClient,
		},
		{
			Name:        "ListVehicles",
			Method:      http.MethodGet,
			Pattern:     "/api/vehicles",
			HandlerFunc: handleFunctions.VehicleAPI.ListVehicles,
		},
		{
			Name:        "GetVehicleById",
			Method:      http.MethodGet,
			Pattern:     "/api/vehicles/:id",
			HandlerFunc: handleFunctions.VehicleAPI.GetVehicleById,
		},
		{
			Name:        "GetVehicleByPlate",
			Method:      http.MethodGet,
			Pattern:     "/api/vehicles/plate/:plate",
			HandlerFunc: handleFunctions.VehicleAPI.GetVehicleByPlate,
		},
		{
			Name:        "CreateVehicle",
			Method:      http.MethodPost,
			Pattern:     "/api/vehicles",
			HandlerFunc: handleFunctions.VehicleAPI.CreateVehicle,
		},
		{
			Name:        "UpdateVehicle",
			Method:      http.MethodPut,
			Pattern:     "/api/vehicles/:id",
			HandlerFunc: handleFunctions.VehicleAPI.UpdateVehicle,
		},
		{
			Name:        "DeleteVehicle",
			Method:      http.MethodDelete,
			Pattern:     "/api/vehicles/:id",
			HandlerFunc: handleFunctions.VehicleAPI.DeleteVehicle,
		},
		{
			Name:        "CreateUser",
			Method:      http.MethodPost,
			Pattern:     "/api/users/new",
			HandlerFunc: handleFunctions.UserAPI.CreateUser,
			Roles:       adminOnly,
		},
		{
			Name:        "ListUsers",
			Method:      http.MethodGet,
			Pattern:     "/api/users",
			HandlerFunc: handleFunctions.UserAPI.ListUsers,
			Roles:       adminOnly,
		},
		{
			Name:        "GetUserById",
			Method:      http.MethodGet,
			Pattern:     "/api/users/:id",
			HandlerFunc: handleFunctions.UserAPI.GetUserById,
			Roles:       adminOnly,
		},
		{
			Name:        "UpdateUser",
			Method:      http.MethodPut,
			Pattern:     "/api/users/:id",
			HandlerFunc: handleFunctions.UserAPI.UpdateUser,
			Roles:       adminOnly,
		},
		{
			Name:        "DeleteUser",
			Method:      http.MethodDelete,
			Pattern:     "/api/users/:id",
			HandlerFunc: handleFunctions.UserAPI.DeleteUser,
			Roles:       adminOnly,
		},
		{
			Name:        "GetDashboardMetrics",
			Method:      http.MethodGet,
			Pattern:     "/api/dashboard/metrics",
			HandlerFunc: handleFunctions.DashboardAPI.GetMetrics,
			Roles:       adminOnly,
		},
	}
}
