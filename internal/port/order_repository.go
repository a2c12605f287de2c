package port

import (
	"context"

	"github.com/SuperShot3/order-form/internal/domain"
)

// OrderRepository defines the contract for order persistence. Both the
// Postgres and the spreadsheet backend implement it.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, orderID string) error
	// IDsWithPrefix returns every order id starting with the given prefix,
	// used for daily sequence allocation.
	IDsWithPrefix(ctx context.Context, prefix string) ([]string, error)
}
