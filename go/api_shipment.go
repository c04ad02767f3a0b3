package courierserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	shipmenthttpmapper "github.com/udea/couriersync/internal/domains/shipments/adapters/http/mapper"
	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/shared/principal"
)

// ShipmentGate is the role-aware entry point into the shipments context.
type ShipmentGate interface {
	Create(ctx context.Context, input *shipmenttypes.CreateShipmentInput, role principal.Role) (*shipmenttypes.ShipmentProjection, error)
	Update(ctx context.Context, id int64, patch *shipmenttypes.UpdateShipmentInput, role principal.Role) (*shipmenttypes.ShipmentProjection, error)
	ChangeStatus(ctx context.Context, id int64, status domain.Status, role principal.Role, observations string) (*shipmenttypes.ShipmentProjection, error)
	Delete(ctx context.Context, id int64, role principal.Role) error
	Read(ctx context.Context, id int64, role principal.Role) (*shipmenttypes.ShipmentProjection, error)
	ReadByTrackingCode(ctx context.Context, code string, role principal.Role) (*shipmenttypes.ShipmentProjection, error)
	List(ctx context.Context, role principal.Role) ([]*shipmenttypes.ShipmentProjection, error)
}

// ShipmentAPI wires HTTP transport with the shipments gate. Every authenticated role reaches
// these handlers; the gate decides what each role may do.
type ShipmentAPI struct {
	gate ShipmentGate
}

func NewShipmentAPI(gate ShipmentGate) ShipmentAPI {
	return ShipmentAPI{gate: gate}
}

// Get /api/shipments
// List shipments
func (api *ShipmentAPI) ListShipments(c *gin.Context) {
	result, err := api.gate.List(c.Request.Context(), callerRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromProjectionList(result))
}

// Get /api/shipments/:id
// Find shipment by ID
func (api *ShipmentAPI) GetShipmentById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	shipment, err := api.gate.Read(c.Request.Context(), id, callerRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if shipment == nil {
		respondNotFound(c, "shipment", id)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromProjection(shipment))
}

// Get /api/shipments/tracking/:code
// Find shipment by tracking code
func (api *ShipmentAPI) GetShipmentByTrackingCode(c *gin.Context) {
	code := c.Param("code")
	shipment, err := api.gate.ReadByTrackingCode(c.Request.Context(), code, callerRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if shipment == nil {
		respondNotFound(c, "shipment", code)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromProjection(shipment))
}

// Post /api/shipments
// Register a shipment
func (api *ShipmentAPI) CreateShipment(c *gin.Context) {
	var payload shipmenthttpmapper.MutationShipment
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input, err := shipmenthttpmapper.ToCreateInput(payload)
	if err != nil {
		respondValidation(c, err)
		return
	}
	created, err := api.gate.Create(c.Request.Context(), input, callerRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipmenthttpmapper.FromProjection(created))
}

// Put /api/shipments/:id
// Update an existing shipment
func (api *ShipmentAPI) UpdateShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload shipmenthttpmapper.MutationShipment
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	patch, err := shipmenthttpmapper.ToUpdateInput(payload)
	if err != nil {
		respondValidation(c, err)
		return
	}
	updated, err := api.gate.Update(c.Request.Context(), id, patch, callerRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromProjection(updated))
}

// Put /api/shipments/:id/status
// Move a shipment to another status
func (api *ShipmentAPI) UpdateShipmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, err := domain.ParseStatus(c.Query("status"))
	if err != nil {
		respondValidation(c, err)
		return
	}
	updated, err := api.gate.ChangeStatus(c.Request.Context(), id, status, callerRole(c), c.Query("observations"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipmenthttpmapper.FromProjection(updated))
}

// Delete /api/shipments/:id
// Deletes a shipment
func (api *ShipmentAPI) DeleteShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.gate.Delete(c.Request.Context(), id, callerRole(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
