package courierserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/udea/couriersync/internal/domains/users/adapters/http/mapper"
	userports "github.com/udea/couriersync/internal/domains/users/ports"
)

// UserAPI manages accounts. The router restricts it to administrators.
type UserAPI struct {
	service userports.Service
}

func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /api/users/new
// Create user
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload userhttpmapper.UserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input, err := userhttpmapper.ToCreateInput(payload)
	if err != nil {
		respondValidation(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(created))
}

// Get /api/users
// List users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUsers(users))
}

// Get /api/users/:id
// Get user by id
func (api *UserAPI) GetUserById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := api.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		respondNotFound(c, "user", id)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Put /api/users/:id
// Updated user
func (api *UserAPI) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload userhttpmapper.UserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input, err := userhttpmapper.ToUpdateInput(payload)
	if err != nil {
		respondValidation(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(updated))
}

// Delete /api/users/:id
// Delete user
func (api *UserAPI) DeleteUser(c *gin.Context) {
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
