package courierserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	vehicleports "github.com/udea/couriersync/internal/domains/vehicles/ports"
)

// VehicleAPI exposes the delivery fleet.
type VehicleAPI struct {
	service vehicleports.Service
}

func NewVehicleAPI(service vehicleports.Service) VehicleAPI {
	return VehicleAPI{service: service}
}

// Get /api/vehicles
func (api *VehicleAPI) ListVehicles(c *gin.Context) {
	list, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiclesFromDomain(list))
}

// Get /api/vehicles/:id
func (api *VehicleAPI) GetVehicleById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	vehicle, err := api.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if vehicle == nil {
		respondNotFound(c, "vehicle", id)
		return
	}
	c.JSON(http.StatusOK, vehicleFromDomain(vehicle))
}

// Get /api/vehicles/plate/:plate
func (api *VehicleAPI) GetVehicleByPlate(c *gin.Context) {
	plate := c.Param("plate")
	vehicle, err := api.service.FindByPlate(c.Request.Context(), plate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if vehicle == nil {
		respondNotFound(c, "vehicle", plate)
		return
	}
	c.JSON(http.StatusOK, vehicleFromDomain(vehicle))
}

// Post /api/vehicles
func (api *VehicleAPI) CreateVehicle(c *gin.Context) {
	var payload Vehicle
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), payload.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicleFromDomain(created))
}

// Put /api/vehicles/:id
func (api *VehicleAPI) UpdateVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload Vehicle
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), id, payload.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicleFromDomain(updated))
}

// Delete /api/vehicles/:id
func (api *VehicleAPI) DeleteVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.DeleteByID(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
