package order_test

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

// The scenarios below run the real repositories against a migrated
// in-memory sqlite database, no mocks involved.

func TestCheckoutScenario(t *testing.T) {
	conn := testutil.OpenSQLite(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	catalogRepo := catalog.NewRepository(conn)
	userRepo := user.NewRepository(conn)
	orderRepo := order.NewRepository(conn, "sqlite")

	productA, err := catalogRepo.Create(ctx, "Producto A", 10.0, 5)
	require.NoError(t, err)

	userID, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)

	c := cart.New(userID)
	c.Add(productA, 2)

	orderID, err := orderRepo.Place(ctx, userID, order.DeliveryCounter, c.Items(), order.PolicySkip)
	require.NoError(t, err)

	o, err := orderRepo.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, o)
	require.InDelta(t, 20.0, o.Total, 1e-9)
	require.Equal(t, order.StatusCreated, o.Status)
	require.Len(t, o.Items, 1)
	require.Equal(t, 2, o.Items[0].Quantity)
	require.InDelta(t, 10.0, o.Items[0].UnitPrice, 1e-9)

	p, err := catalogRepo.GetByID(ctx, productA)
	require.NoError(t, err)
	require.Equal(t, 3, p.Stock)
}

func TestCheckoutSkipsMissingProduct(t *testing.T) {
	conn := testutil.OpenSQLite(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	catalogRepo := catalog.NewRepository(conn)
	userRepo := user.NewRepository(conn)
	orderRepo := order.NewRepository(conn, "sqlite")

	productA, err := catalogRepo.Create(ctx, "Producto A", 10.0, 5)
	require.NoError(t, err)
	userID, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)

	lines := []cart.Line{
		{ProductID: productA, Quantity: 2},
		{ProductID: productA + 1000, Quantity: 3},
	}

	orderID, err := orderRepo.Place(ctx, userID, order.DeliveryTable, lines, order.PolicySkip)
	require.NoError(t, err)

	o, err := orderRepo.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.InDelta(t, 20.0, o.Total, 1e-9)
	require.Len(t, o.Items, 1)
	require.Equal(t, productA, o.Items[0].ProductID)
}

func TestCheckoutFailPolicyLeavesNothingBehind(t *testing.T) {
	conn := testutil.OpenSQLite(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	catalogRepo := catalog.NewRepository(conn)
	userRepo := user.NewRepository(conn)
	orderRepo := order.NewRepository(conn, "sqlite")

	productA, err := catalogRepo.Create(ctx, "Producto A", 10.0, 5)
	require.NoError(t, err)
	userID, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)

	lines := []cart.Line{
		{ProductID: productA, Quantity: 2},
		{ProductID: productA + 1000, Quantity: 3},
	}

	_, err = orderRepo.Place(ctx, userID, order.DeliveryCounter, lines, order.PolicyFail)
	require.ErrorIs(t, err, order.ErrMissingProduct)

	// Nothing durable: no order rows, stock untouched.
	orders, err := orderRepo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, orders)

	p, err := catalogRepo.GetByID(ctx, productA)
	require.NoError(t, err)
	require.Equal(t, 5, p.Stock)
}

func TestCheckoutOversellFloorsStock(t *testing.T) {
	conn := testutil.OpenSQLite(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	catalogRepo := catalog.NewRepository(conn)
	userRepo := user.NewRepository(conn)
	orderRepo := order.NewRepository(conn, "sqlite")

	productA, err := catalogRepo.Create(ctx, "Producto A", 10.0, 2)
	require.NoError(t, err)
	userID, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)

	orderID, err := orderRepo.Place(ctx, userID, order.DeliveryCounter,
		[]cart.Line{{ProductID: productA, Quantity: 5}}, order.PolicySkip)
	require.NoError(t, err)

	o, err := orderRepo.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.InDelta(t, 50.0, o.Total, 1e-9)

	p, err := catalogRepo.GetByID(ctx, productA)
	require.NoError(t, err)
	require.Equal(t, 0, p.Stock)
}

func TestDuplicateEmailYieldsSameUser(t *testing.T) {
	conn := testutil.OpenSQLite(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := user.NewRepository(conn)

	first, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)
	second, err := userRepo.CreateOrGet(ctx, "Ana Maria", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int
	require.NoError(t, conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, "ana@example.com").Scan(&count))
	require.Equal(t, 1, count)
}

func TestOrderHistoryNewestFirst(t *testing.T) {
	conn := testutil.OpenSQLite(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	catalogRepo := catalog.NewRepository(conn)
	userRepo := user.NewRepository(conn)
	orderRepo := order.NewRepository(conn, "sqlite")

	productA, err := catalogRepo.Create(ctx, "Producto A", 10.0, 50)
	require.NoError(t, err)
	userID, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)

	first, err := orderRepo.Place(ctx, userID, order.DeliveryCounter,
		[]cart.Line{{ProductID: productA, Quantity: 1}}, order.PolicySkip)
	require.NoError(t, err)
	second, err := orderRepo.Place(ctx, userID, order.DeliveryTable,
		[]cart.Line{{ProductID: productA, Quantity: 2}}, order.PolicySkip)
	require.NoError(t, err)

	orders, err := orderRepo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second, orders[0].ID)
	require.Equal(t, first, orders[1].ID)
	require.Empty(t, orders[0].Items)
}

func TestStatusAdvancesForwardOnly(t *testing.T) {
	conn := testutil.OpenSQLite(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	catalogRepo := catalog.NewRepository(conn)
	userRepo := user.NewRepository(conn)
	orderRepo := order.NewRepository(conn, "sqlite")

	productA, err := catalogRepo.Create(ctx, "Producto A", 10.0, 5)
	require.NoError(t, err)
	userID, err := userRepo.CreateOrGet(ctx, "Ana", "ana@example.com", user.RoleCustomer)
	require.NoError(t, err)
	orderID, err := orderRepo.Place(ctx, userID, order.DeliveryCounter,
		[]cart.Line{{ProductID: productA, Quantity: 1}}, order.PolicySkip)
	require.NoError(t, err)

	require.NoError(t, orderRepo.AdvanceStatus(ctx, orderID, order.StatusPaid))
	require.ErrorIs(t, orderRepo.AdvanceStatus(ctx, orderID, order.StatusPaid), order.ErrInvalidTransition)
	require.NoError(t, orderRepo.AdvanceStatus(ctx, orderID, order.StatusReady))

	o, err := orderRepo.GetByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.StatusReady, o.Status)
}
