package httpapi

import (
	"context"
	"log"

	"github.com/quickbite/ordering/internal/cart"
	"github.com/quickbite/ordering/internal/catalog"
	"github.com/quickbite/ordering/internal/order"
	"github.com/quickbite/ordering/internal/user"
)

// OrderEventsPublisher is satisfied by events.Publisher; a nil publisher
// is a valid no-op implementation.
type OrderEventsPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

type Handler struct {
	catalog  catalog.Repository
	users    user.Repository
	orders   order.Repository
	sessions *cart.Sessions
	events   OrderEventsPublisher
	policy   order.MissingProductPolicy
	logger   *log.Logger
}

func NewHandler(
	catalogRepo catalog.Repository,
	userRepo user.Repository,
	orderRepo order.Repository,
	sessions *cart.Sessions,
	publisher OrderEventsPublisher,
	policy order.MissingProductPolicy,
	logger *log.Logger,
) *Handler {
	return &Handler{
		catalog:  catalogRepo,
		users:    userRepo,
		orders:   orderRepo,
		sessions: sessions,
		events:   publisher,
		policy:   policy,
		logger:   logger,
	}
}
