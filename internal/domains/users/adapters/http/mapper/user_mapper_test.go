package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	userdomain "github.com/udea/couriersync/internal/domains/users/domain"
	"github.com/udea/couriersync/internal/shared/principal"
)

func TestToCreateInput_ParsesRole(t *testing.T) {
	in, err := ToCreateInput(UserRequest{Name: "Ana", Email: "ana@x.co", Password: "secret1", Role: "role_driver"})
	require.NoError(t, err)
	require.Equal(t, principal.RoleDriver, in.Role)

	_, err = ToCreateInput(UserRequest{Name: "Ana", Role: "SUPERVISOR"})
	require.ErrorIs(t, err, userdomain.ErrInvalidRole)

	_, err = ToUpdateInput(UserRequest{Name: "Ana"})
	require.ErrorIs(t, err, userdomain.ErrInvalidRole)
}

func TestFromDomainUser_OmitsPassword(t *testing.T) {
	out := FromDomainUser(&userdomain.User{ID: 4, Name: "Ana", Email: "ana@x.co", PasswordHash: "$2a$hash", Role: principal.RoleOperator})
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hash")
	require.NotContains(t, string(raw), "password")
	require.Contains(t, string(raw), `"role":"OPERATOR"`)
}
