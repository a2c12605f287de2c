package excel

import (
	"sort"
	"strings"

	"github.com/SuperShot3/order-form/internal/domain"
)

// matchesFilter applies the same narrowing the relational backend does in
// SQL.
func matchesFilter(o domain.Order, f domain.OrderFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystacks := []string{o.OrderID, o.CustomerName, o.ReceiverName, o.Phone, o.BouquetName}
		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.DeliveryStatus != "" && o.DeliveryStatus != f.DeliveryStatus {
		return false
	}
	if f.Priority != "" && o.Priority != f.Priority {
		return false
	}
	if f.StartDate != "" && o.DeliveryDate < f.StartDate {
		return false
	}
	if f.EndDate != "" && o.DeliveryDate > f.EndDate {
		return false
	}
	return true
}

// sortOrders sorts newest delivery date first, ties broken by order id
// descending. Dates are canonical YYYY-MM-DD so string comparison is
// chronological.
func sortOrders(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].DeliveryDate != orders[j].DeliveryDate {
			return orders[i].DeliveryDate > orders[j].DeliveryDate
		}
		return orders[i].OrderID > orders[j].OrderID
	})
}
