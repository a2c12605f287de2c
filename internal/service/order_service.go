package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/message"
	"github.com/SuperShot3/order-form/internal/parse"
	"github.com/SuperShot3/order-form/internal/port"
)

// OrderService defines the order ledger contract.
type OrderService interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, orderID string) error
	Summary(ctx context.Context, filter domain.OrderFilter) (*domain.OrderSummary, error)
	Messages(ctx context.Context, orderID string) (map[message.Kind]string, error)
}

type orderService struct {
	repo          port.OrderRepository
	orderLinkBase string
	now           func() time.Time
}

// NewOrderService creates an OrderService on top of the configured
// repository. orderLinkBase is the public URL prefix customer order links
// are built from.
func NewOrderService(repo port.OrderRepository, orderLinkBase string) OrderService {
	return &orderService{
		repo:          repo,
		orderLinkBase: orderLinkBase,
		now:           time.Now,
	}
}

func (s *orderService) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.OrderID == "" {
		id, err := s.nextOrderID(ctx)
		if err != nil {
			return nil, fmt.Errorf("orderService.Create: %w", err)
		}
		order.OrderID = id
	}
	if order.OrderLink == "" && s.orderLinkBase != "" {
		order.OrderLink = s.orderLinkBase + order.OrderID
	}
	applyDefaults(order)
	s.applyDerived(order)

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *orderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.repo.List(ctx, filter)
}

func (s *orderService) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	s.applyDerived(order)
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, orderID string) error {
	return s.repo.Delete(ctx, orderID)
}

// Summary aggregates the financial totals over the filtered orders. Gross
// is items plus delivery fee; rows whose profit never computed contribute
// nothing to the profit total.
func (s *orderService) Summary(ctx context.Context, filter domain.OrderFilter) (*domain.OrderSummary, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := &domain.OrderSummary{}
	for _, o := range orders {
		items := parseMoney(o.ItemsTotal)
		fee := parseMoney(o.DeliveryFee)
		summary.Gross += items + fee
		summary.TotalDelivery += fee
		summary.TotalProfit += parseMoney(o.TotalProfit)
	}
	return summary, nil
}

// Messages renders the chat texts for one order, with the missing-info
// template driven by the order's current field gaps.
func (s *orderService) Messages(ctx context.Context, orderID string) (map[message.Kind]string, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return message.Render(*order, parse.MissingFields(orderFields(*order)))
}

// nextOrderID allocates the next id in today's YYYYMMDD-NNN sequence.
func (s *orderService) nextOrderID(ctx context.Context) (string, error) {
	prefix := s.now().Format("20060102") + "-"
	ids, err := s.repo.IDsWithPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1), nil
}

// applyDerived recomputes profit and stamps the payment confirmation time
// on transition to Confirmed.
func (s *orderService) applyDerived(order *domain.Order) {
	order.TotalProfit = totalProfit(order)
	if order.PaymentStatus == string(domain.PaymentStatusConfirmed) && order.PaymentConfirmedTime == "" {
		order.PaymentConfirmedTime = s.now().Format(time.RFC3339)
	}
}

func applyDefaults(order *domain.Order) {
	if order.PaymentStatus == "" {
		order.PaymentStatus = string(domain.PaymentStatusUnpaid)
	}
	if order.DeliveryStatus == "" {
		order.DeliveryStatus = string(domain.DeliveryStatusPending)
	}
	if order.Priority == "" {
		order.Priority = string(domain.PriorityNormal)
	}
}

// totalProfit is items minus flowers cost minus delivery fee. It stays
// blank until items total and flowers cost are both numeric and a delivery
// fee has been entered (zero counts as entered).
func totalProfit(order *domain.Order) string {
	items, itemsOK := parseMoneyStrict(order.ItemsTotal)
	flowers, flowersOK := parseMoneyStrict(order.FlowersCost)
	fee, feeOK := parseMoneyStrict(order.DeliveryFee)
	if !itemsOK || !flowersOK || !feeOK {
		return ""
	}
	return strconv.FormatFloat(items-flowers-fee, 'f', -1, 64)
}

func parseMoney(s string) float64 {
	v, _ := parseMoneyStrict(s)
	return v
}

func parseMoneyStrict(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// orderFields projects an order row back into the extraction field map so
// completeness can be re-checked after manual edits.
func orderFields(o domain.Order) domain.Fields {
	f := domain.Fields{}
	f.SetString(domain.FieldOrderID, o.OrderID)
	f.SetString(domain.FieldOrderLink, o.OrderLink)
	f.SetString(domain.FieldCustomerName, o.CustomerName)
	f.SetString(domain.FieldReceiverName, o.ReceiverName)
	f.SetString(domain.FieldPhone, o.Phone)
	f.SetString(domain.FieldPreferredContact, o.PreferredContact)
	f.SetString(domain.FieldDeliveryDate, o.DeliveryDate)
	f.SetString(domain.FieldTimeWindow, o.TimeWindow)
	f.SetString(domain.FieldDistrict, o.District)
	f.SetString(domain.FieldFullAddress, o.FullAddress)
	f.SetString(domain.FieldMapsLink, o.MapsLink)
	f.SetString(domain.FieldBouquetName, o.BouquetName)
	f.SetString(domain.FieldSize, o.Size)
	f.SetString(domain.FieldCardText, o.CardText)
	f.SetString(domain.FieldImageLink, o.ImageLink)
	if v, ok := parseMoneyStrict(o.ItemsTotal); ok {
		f.SetNumber(domain.FieldItemsTotal, v)
	}
	if v, ok := parseMoneyStrict(o.DeliveryFee); ok {
		f.SetNumber(domain.FieldDeliveryFee, v)
	}
	return f
}
