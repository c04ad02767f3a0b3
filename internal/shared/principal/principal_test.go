package principal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ADMIN":         RoleAdmin,
		"operator":      RoleOperator,
		" ROLE_DRIVER ": RoleDriver,
	}
	for input, want := range cases {
		got, err := ParseRole(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got)
	}

	for _, input := range []string{"", "SUPERVISOR", "ADMINISTRATOR", "ADMIN|DRIVER"} {
		_, err := ParseRole(input)
		require.ErrorIs(t, err, ErrUnknownRole, input)
	}
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	require.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{UserID: 7, Email: "d@example.com", Role: RoleDriver})
	p, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, int64(7), p.UserID)
	require.Equal(t, RoleDriver, p.Role)

	ctx = WithRole(ctx, RoleAdmin)
	p, ok = FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, int64(7), p.UserID)
	require.Equal(t, RoleAdmin, p.Role)
}

func TestFromContextRejectsUnknownRole(t *testing.T) {
	ctx := WithPrincipal(context.Background(), Principal{Role: Role("GUEST")})
	_, ok := FromContext(ctx)
	require.False(t, ok)
}
