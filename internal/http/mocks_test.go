package httpapi_test

import (
	"context"

	"github.com/quickbite/ordering/internal/cart"
	"github.com/quickbite/ordering/internal/catalog"
	"github.com/quickbite/ordering/internal/order"
	"github.com/quickbite/ordering/internal/user"
)

type catalogRepoMock struct {
	CreateFunc   func(ctx context.Context, name string, price float64, stock int) (int64, error)
	GetByIDFunc  func(ctx context.Context, productID int64) (*catalog.Product, error)
	ListFunc     func(ctx context.Context) ([]catalog.Product, error)
	SetStockFunc func(ctx context.Context, productID int64, stock int) (bool, error)
	UpdateFunc   func(ctx context.Context, p catalog.Product) (bool, error)
}

func (m *catalogRepoMock) Create(ctx context.Context, name string, price float64, stock int) (int64, error) {
	return m.CreateFunc(ctx, name, price, stock)
}
func (m *catalogRepoMock) GetByID(ctx context.Context, productID int64) (*catalog.Product, error) {
	return m.GetByIDFunc(ctx, productID)
}
func (m *catalogRepoMock) List(ctx context.Context) ([]catalog.Product, error) {
	return m.ListFunc(ctx)
}
func (m *catalogRepoMock) SetStock(ctx context.Context, productID int64, stock int) (bool, error) {
	return m.SetStockFunc(ctx, productID, stock)
}
func (m *catalogRepoMock) Update(ctx context.Context, p catalog.Product) (bool, error) {
	return m.UpdateFunc(ctx, p)
}

type userRepoMock struct {
	CreateOrGetFunc func(ctx context.Context, name, email string, role user.Role) (int64, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*user.User, error)
	GetByIDFunc     func(ctx context.Context, userID int64) (*user.User, error)
}

func (m *userRepoMock) CreateOrGet(ctx context.Context, name, email string, role user.Role) (int64, error) {
	return m.CreateOrGetFunc(ctx, name, email, role)
}
func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *userRepoMock) GetByID(ctx context.Context, userID int64) (*user.User, error) {
	return m.GetByIDFunc(ctx, userID)
}

type orderRepoMock struct {
	PlaceFunc         func(ctx context.Context, userID int64, mode order.DeliveryMode, lines []cart.Line, policy order.MissingProductPolicy) (int64, error)
	GetByIDFunc       func(ctx context.Context, orderID int64) (*order.Order, error)
	ListByUserFunc    func(ctx context.Context, userID int64) ([]order.Order, error)
	AdvanceStatusFunc func(ctx context.Context, orderID int64, to order.Status) error
}

func (m *orderRepoMock) Place(ctx context.Context, userID int64, mode order.DeliveryMode, lines []cart.Line, policy order.MissingProductPolicy) (int64, error) {
	return m.PlaceFunc(ctx, userID, mode, lines, policy)
}
func (m *orderRepoMock) GetByID(ctx context.Context, orderID int64) (*order.Order, error) {
	return m.GetByIDFunc(ctx, orderID)
}
func (m *orderRepoMock) ListByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	return m.ListByUserFunc(ctx, userID)
}
func (m *orderRepoMock) AdvanceStatus(ctx context.Context, orderID int64, to order.Status) error {
	return m.AdvanceStatusFunc(ctx, orderID, to)
}

type publisherMock struct {
	published []*order.Order
	err       error
}

func (m *publisherMock) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	m.published = append(m.published, o)
	return m.err
}
