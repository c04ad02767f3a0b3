package courierserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	clientports "github.com/udea/couriersync/internal/domains/clients/ports"
)

// ClientAPI exposes client management.
type ClientAPI struct {
	service clientports.Service
}

func NewClientAPI(service clientports.Service) ClientAPI {
	return ClientAPI{service: service}
}

// Get /api/clients
func (api *ClientAPI) ListClients(c *gin.Context) {
	list, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientsFromDomain(list))
}

// Get /api/clients/:id
func (api *ClientAPI) GetClientById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	client, err := api.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if client == nil {
		respondNotFound(c, "client", id)
		return
	}
	c.JSON(http.StatusOK, clientFromDomain(client))
}

// Post /api/clients
func (api *ClientAPI) CreateClient(c *gin.Context) {
	var payload Client
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), payload.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clientFromDomain(created))
}

// Put /api/clients/:id
func (api *ClientAPI) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload Client
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), id, payload.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientFromDomain(updated))
}

// Delete /api/clients/:id
func (api *ClientAPI) DeleteClient(c *gin.Context) {
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
