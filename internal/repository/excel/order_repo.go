package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/port"
)

const sheetName = "Orders"

// Column headers in ledger order. The text matches the historical workbook
// exactly, typos included, so existing spreadsheets keep working.
var columnHeaders = []string{
	"Order ID",
	"Oder Link",
	"Customer Name",
	"Flower Reciver Name",
	"Phone",
	"Preferred Contact",
	"Delivery Date",
	"Time Window",
	"District",
	"Full Address",
	"Google Maps Link",
	"Bouquet Name",
	"Size",
	"Card Text (LONG)",
	"Items Total F+C",
	"Delivery Fee",
	"Flowers Cost C/C",
	"Total Proft",
	"Payment Status",
	"Customer Payment Confirmed Time",
	"Florist Payment Status",
	"Florist Payment",
	"Driver Assigned",
	"Delivery Status",
	"Priority",
	"Notes",
	"Image Link",
}

// OrderRepo is a workbook-backed OrderRepository. Every mutation rewrites
// the file under a process-wide mutex, which is plenty for a single-operator
// deployment and keeps the workbook openable in Excel at any time.
type OrderRepo struct {
	mu   sync.Mutex
	path string
}

// NewOrderRepo creates (and if needed initializes) the workbook at
// dataDir/orders.xlsx.
func NewOrderRepo(dataDir string) (*OrderRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	r := &OrderRepo{path: filepath.Join(dataDir, "orders.xlsx")}
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		if err := r.writeAll(nil); err != nil {
			return nil, fmt.Errorf("initializing workbook: %w", err)
		}
	}
	return r, nil
}

var _ port.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadAll()
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.OrderID == order.OrderID {
			return domain.ErrDuplicateOrderID
		}
	}
	orders = append(orders, *order)
	return r.writeAll(orders)
}

func (r *OrderRepo) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].OrderID == orderID {
			return &orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *OrderRepo) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	out := []domain.Order{}
	for _, o := range orders {
		if matchesFilter(o, filter) {
			out = append(out, o)
		}
	}
	sortOrders(out)
	return out, nil
}

func (r *OrderRepo) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadAll()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].OrderID == order.OrderID {
			orders[i] = *order
			return r.writeAll(orders)
		}
	}
	return domain.ErrNotFound
}

func (r *OrderRepo) Delete(_ context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadAll()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].OrderID == orderID {
			orders = append(orders[:i], orders[i+1:]...)
			return r.writeAll(orders)
		}
	}
	return domain.ErrNotFound
}

func (r *OrderRepo) IDsWithPrefix(_ context.Context, prefix string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	ids := []string{}
	for _, o := range orders {
		if len(o.OrderID) >= len(prefix) && o.OrderID[:len(prefix)] == prefix {
			ids = append(ids, o.OrderID)
		}
	}
	return ids, nil
}

func (r *OrderRepo) loadAll() ([]domain.Order, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheetName, err)
	}
	orders := []domain.Order{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		o := rowToOrder(row)
		if o.OrderID == "" {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepo) writeAll(orders []domain.Order) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, h := range columnHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	for i, o := range orders {
		values := orderToRow(o)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	if err := f.SaveAs(r.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func orderToRow(o domain.Order) []interface{} {
	return []interface{}{
		o.OrderID, o.OrderLink, o.CustomerName, o.ReceiverName, o.Phone,
		o.PreferredContact, o.DeliveryDate, o.TimeWindow, o.District,
		o.FullAddress, o.MapsLink, o.BouquetName, o.Size, o.CardText,
		o.ItemsTotal, o.DeliveryFee, o.FlowersCost, o.TotalProfit,
		o.PaymentStatus, o.PaymentConfirmedTime, o.FloristStatus,
		o.FloristPayment, o.DriverAssigned, o.DeliveryStatus, o.Priority,
		o.Notes, o.ImageLink,
	}
}

func rowToOrder(row []string) domain.Order {
	at := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	floristStatus := 0
	if v := at(20); v == "1" || v == "true" || v == "TRUE" {
		floristStatus = 1
	} else if n, err := strconv.Atoi(v); err == nil && n != 0 {
		floristStatus = 1
	}
	return domain.Order{
		OrderID:              at(0),
		OrderLink:            at(1),
		CustomerName:         at(2),
		ReceiverName:         at(3),
		Phone:                at(4),
		PreferredContact:     at(5),
		DeliveryDate:         at(6),
		TimeWindow:           at(7),
		District:             at(8),
		FullAddress:          at(9),
		MapsLink:             at(10),
		BouquetName:          at(11),
		Size:                 at(12),
		CardText:             at(13),
		ItemsTotal:           at(14),
		DeliveryFee:          at(15),
		FlowersCost:          at(16),
		TotalProfit:          at(17),
		PaymentStatus:        at(18),
		PaymentConfirmedTime: at(19),
		FloristStatus:        floristStatus,
		FloristPayment:       at(21),
		DriverAssigned:       at(22),
		DeliveryStatus:       at(23),
		Priority:             at(24),
		Notes:                at(25),
		ImageLink:            at(26),
	}
}
