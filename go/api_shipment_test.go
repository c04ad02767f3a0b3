package courierserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	shipmenthttpmapper "github.com/udea/couriersync/internal/domains/shipments/adapters/http/mapper"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/shared/principal"
)

func createShipment(t *testing.T, s *testServer, role principal.Role, body map[string]any) shipmenthttpmapper.Shipment {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/shipments", role, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created shipmenthttpmapper.Shipment
	decode(t, rec, &created)
	return created
}

func TestShipments_OperatorCreatesPending(t *testing.T) {
	s := newTestServer(t)
	clientID := s.seedClient(t)

	created := createShipment(t, s, principal.RoleOperator, map[string]any{"clientId": clientID})
	require.True(t, domain.IsTrackingCode(created.TrackingCode))
	require.Equal(t, string(domain.StatusPending), created.Status)
	require.Equal(t, string(domain.PriorityMedium), created.Priority)

	rec := s.do(t, http.MethodGet, "/api/shipments/tracking/"+created.TrackingCode, principal.RoleDriver, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestShipments_CreateRejections(t *testing.T) {
	s := newTestServer(t)
	clientID := s.seedClient(t)

	rec := s.do(t, http.MethodPost, "/api/shipments", principal.RoleOperator, map[string]any{"clientId": clientID, "status": "IN_TRANSIT"})
	requireProblem(t, rec, http.StatusForbidden)

	rec = s.do(t, http.MethodPost, "/api/shipments", principal.RoleDriver, map[string]any{"clientId": clientID})
	requireProblem(t, rec, http.StatusForbidden)

	rec = s.do(t, http.MethodPost, "/api/shipments", principal.RoleAdmin, map[string]any{"clientId": clientID, "trackingCode": "CSABCDEFG"})
	requireProblem(t, rec, http.StatusBadRequest)

	rec = s.do(t, http.MethodPost, "/api/shipments", principal.RoleAdmin, map[string]any{"clientId": 999})
	requireProblem(t, rec, http.StatusNotFound)
}

func TestShipments_ReadMissingIs404(t *testing.T) {
	s := newTestServer(t)

	requireProblem(t, s.do(t, http.MethodGet, "/api/shipments/42", principal.RoleDriver, nil), http.StatusNotFound)
	requireProblem(t, s.do(t, http.MethodGet, "/api/shipments/tracking/CS0000000", principal.RoleDriver, nil), http.StatusNotFound)
	requireProblem(t, s.do(t, http.MethodGet, "/api/shipments/abc", principal.RoleDriver, nil), http.StatusBadRequest)
}

func TestShipments_DriverStatusFlow(t *testing.T) {
	s := newTestServer(t)
	clientID := s.seedClient(t)
	created := createShipment(t, s, principal.RoleOperator, map[string]any{"clientId": clientID})
	statusPath := func(status string) string {
		return fmt.Sprintf("/api/shipments/%d/status?status=%s&observations=on+route", created.ID, status)
	}

	rec := s.do(t, http.MethodPut, statusPath("IN_TRANSIT"), principal.RoleDriver, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var moved shipmenthttpmapper.Shipment
	decode(t, rec, &moved)
	require.Equal(t, string(domain.StatusInTransit), moved.Status)
	require.Equal(t, "on route", moved.Observations)
	require.Equal(t, created.TrackingCode, moved.TrackingCode)

	requireProblem(t, s.do(t, http.MethodPut, statusPath("PENDING"), principal.RoleDriver, nil), http.StatusForbidden)
	requireProblem(t, s.do(t, http.MethodPut, statusPath("DELIVERED"), principal.RoleOperator, nil), http.StatusForbidden)
	requireProblem(t, s.do(t, http.MethodPut, statusPath("LOST"), principal.RoleDriver, nil), http.StatusBadRequest)

	rec = s.do(t, http.MethodPut, statusPath("DELIVERED"), principal.RoleDriver, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestShipments_UpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	clientID := s.seedClient(t)
	created := createShipment(t, s, principal.RoleOperator, map[string]any{"clientId": clientID})
	path := fmt.Sprintf("/api/shipments/%d", created.ID)

	rec := s.do(t, http.MethodPut, path, principal.RoleOperator, map[string]any{"priority": "HIGH"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated shipmenthttpmapper.Shipment
	decode(t, rec, &updated)
	require.Equal(t, string(domain.PriorityHigh), updated.Priority)
	require.Equal(t, created.TrackingCode, updated.TrackingCode)

	requireProblem(t, s.do(t, http.MethodPut, path, principal.RoleDriver, map[string]any{"priority": "LOW"}), http.StatusForbidden)
	requireProblem(t, s.do(t, http.MethodDelete, path, principal.RoleDriver, nil), http.StatusForbidden)

	rec = s.do(t, http.MethodDelete, path, principal.RoleOperator, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	requireProblem(t, s.do(t, http.MethodDelete, path, principal.RoleAdmin, nil), http.StatusNotFound)
}
