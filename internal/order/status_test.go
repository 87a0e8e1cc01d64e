package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	require.True(t, CanTransition(StatusCreated, StatusPaid))
	require.True(t, CanTransition(StatusPaid, StatusReady))

	// Backward and skipped steps are rejected.
	require.False(t, CanTransition(StatusPaid, StatusCreated))
	require.False(t, CanTransition(StatusReady, StatusPaid))
	require.False(t, CanTransition(StatusCreated, StatusReady))
	require.False(t, CanTransition(StatusCreated, StatusCreated))
}

func TestAdvance(t *testing.T) {
	next, err := Advance(StatusCreated)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, next)

	next, err = Advance(StatusPaid)
	require.NoError(t, err)
	require.Equal(t, StatusReady, next)

	_, err = Advance(StatusReady)
	require.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("paid")
	require.True(t, ok)
	require.Equal(t, StatusPaid, s)

	_, ok = ParseStatus("cancelled")
	require.False(t, ok)
}

func TestParseDeliveryMode(t *testing.T) {
	m, ok := ParseDeliveryMode("table")
	require.True(t, ok)
	require.Equal(t, DeliveryTable, m)

	_, ok = ParseDeliveryMode("drive-thru")
	require.False(t, ok)
}
