package mapper

import (
	"strings"

	usertypes "github.com/udea/couriersync/internal/domains/users/application/types"
	userdomain "github.com/udea/couriersync/internal/domains/users/domain"
	"github.com/udea/couriersync/internal/shared/principal"
)

// User is the transport form of an account. The password hash is never exposed.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// UserRequest is the inbound payload for sign-up and profile replacement.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func parseRole(value string) (principal.Role, error) {
	if strings.TrimSpace(value) == "" {
		return "", userdomain.ErrInvalidRole
	}
	role, err := principal.ParseRole(value)
	if err != nil {
		return "", userdomain.ErrInvalidRole
	}
	return role, nil
}

// ToCreateInput converts a sign-up payload.
func ToCreateInput(model UserRequest) (usertypes.CreateUserInput, error) {
	role, err := parseRole(model.Role)
	if err != nil {
		return usertypes.CreateUserInput{}, err
	}
	return usertypes.CreateUserInput{
		Name:     model.Name,
		Email:    model.Email,
		Password: model.Password,
		Phone:    model.Phone,
		Role:     role,
	}, nil
}

// ToUpdateInput converts a replacement payload. An empty password keeps the current one.
func ToUpdateInput(model UserRequest) (usertypes.UpdateUserInput, error) {
	role, err := parseRole(model.Role)
	if err != nil {
		return usertypes.UpdateUserInput{}, err
	}
	return usertypes.UpdateUserInput{
		Name:     model.Name,
		Email:    model.Email,
		Password: model.Password,
		Phone:    model.Phone,
		Role:     role,
	}, nil
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role.String(),
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
