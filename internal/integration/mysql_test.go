package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quickbite/ordering/internal/cart"
	"github.com/quickbite/ordering/internal/catalog"
	"github.com/quickbite/ordering/internal/order"
	"github.com/quickbite/ordering/internal/testutil"
	"github.com/quickbite/ordering/internal/user"
)

func TestPlacementRoundTrip_MySQL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	conn, cleanup := testutil.StartMySQL(ctx, t)
	t.Cleanup(cleanup)

	catalogRepo := catalog.NewRepository(conn)
	userRepo := user.NewRepository(conn)
	orderRepo := order.NewRepository(conn, "mysql")

	productA, err := catalogRepo.Create(ctx, "Big Mac", 85.00, 10)
	require.NoError(t, err)

	userID, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)

	again, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, userID, again)

	orderID, err := orderRepo.Place(ctx, userID, order.DeliveryCounter,
		[]cart.Line{{ProductID: productA, Quantity: 2}}, order.PolicySkip)
	require.NoError(t, err)

	o, err := orderRepo.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, o)
	require.InDelta(t, 170.00, o.Total, 1e-9)
	require.Len(t, o.Items, 1)
	require.InDelta(t, 85.00, o.Items[0].UnitPrice, 1e-9)

	p, err := catalogRepo.GetByID(ctx, productA)
	require.NoError(t, err)
	require.Equal(t, 8, p.Stock)
}
