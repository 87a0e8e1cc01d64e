package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjustStockClampsAtZero(t *testing.T) {
	cases := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"decrement", 5, -2, 3},
		{"increment", 5, 3, 8},
		{"to zero", 5, -5, 0},
		{"past zero", 5, -9, 0},
		{"zero stock decrement", 0, -1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{ID: 1, Name: "A", Price: 10, Stock: tc.start}
			p.AdjustStock(tc.delta)
			require.Equal(t, tc.want, p.Stock)
		})
	}
}

func TestSnapshotOf(t *testing.T) {
	snap := SnapshotOf([]Product{
		{ID: 1, Name: "A", Price: 10, Stock: 5},
		{ID: 2, Name: "B", Price: 20, Stock: 0},
	})

	require.Len(t, snap, 2)
	require.Equal(t, "A", snap[1].Name)
	_, ok := snap[3]
	require.False(t, ok)
}
