package courierserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	usertypes "github.com/udea/couriersync/internal/domains/users/application/types"
)

// LoginService issues access tokens.
type LoginService interface {
	Login(ctx context.Context, email, password string) (*usertypes.AccessToken, error)
}

// AuthAPI exposes the public sign-in endpoint.
type AuthAPI struct {
	service LoginService
}

func NewAuthAPI(service LoginService) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/auth/login
// Exchange credentials for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{AccessToken: token.Token})
}
