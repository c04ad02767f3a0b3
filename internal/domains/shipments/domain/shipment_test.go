package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewShipment_Defaults(t *testing.T) {
	shipment, err := NewShipment(3, "", "", "  fragile  ")
	require.NoError(t, err)
	require.Equal(t, StatusPending, shipment.Status)
	require.Equal(t, PriorityMedium, shipment.Priority)
	require.Equal(t, "fragile", shipment.Observations)
	require.Empty(t, shipment.TrackingCode)
}

func TestNewShipment_RejectsInvalidFields(t *testing.T) {
	_, err := NewShipment(0, StatusPending, PriorityLow, "")
	require.ErrorIs(t, err, ErrInvalidClientID)

	_, err = NewShipment(1, Status("LOST"), PriorityLow, "")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = NewShipment(1, StatusPending, Priority("URGENT"), "")
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestGenerateTrackingCode_Format(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		code, err := GenerateTrackingCode()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(code, "CS"))
		require.Len(t, code, 9)
		require.True(t, IsTrackingCode(code), code)
		seen[code] = struct{}{}
	}
	require.Greater(t, len(seen), 190)
}

func TestIsTrackingCode(t *testing.T) {
	require.True(t, IsTrackingCode("CS1234567"))
	require.True(t, IsTrackingCode("CSAB12CD3"))
	require.False(t, IsTrackingCode("cs1234567"))
	require.False(t, IsTrackingCode("CS123456"))
	require.False(t, IsTrackingCode("XX1234567"))
	require.False(t, IsTrackingCode("CS12345-7"))
}

func TestAssignTrackingCode_OnlyOnce(t *testing.T) {
	shipment, err := NewShipment(1, StatusPending, PriorityHigh, "")
	require.NoError(t, err)
	require.ErrorIs(t, shipment.AssignTrackingCode("bad"), ErrInvalidTrackingCode)
	require.NoError(t, shipment.AssignTrackingCode("CS0000001"))
	require.ErrorIs(t, shipment.AssignTrackingCode("CS0000002"), ErrTrackingCodeLocked)
	require.Equal(t, "CS0000001", shipment.TrackingCode)
}

func TestParseStatusAndPriority(t *testing.T) {
	status, err := ParseStatus("in_transit")
	require.NoError(t, err)
	require.Equal(t, StatusInTransit, status)
	_, err = ParseStatus("EN_TRANSITO")
	require.ErrorIs(t, err, ErrInvalidStatus)

	priority, err := ParsePriority(" high ")
	require.NoError(t, err)
	require.Equal(t, PriorityHigh, priority)
	_, err = ParsePriority("")
	require.ErrorIs(t, err, ErrInvalidPriority)
}
