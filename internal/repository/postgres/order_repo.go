package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/port"
)

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `order_id, order_link, customer_name, receiver_name, phone,
	preferred_contact, delivery_date, time_window, district, full_address,
	maps_link, bouquet_name, size, card_text, items_total, delivery_fee,
	flowers_cost, total_profit, payment_status, payment_confirmed_time,
	florist_status, florist_payment, driver_assigned, delivery_status,
	priority, notes, image_link`

const orderValues = `:order_id, :order_link, :customer_name, :receiver_name, :phone,
	:preferred_contact, :delivery_date, :time_window, :district, :full_address,
	:maps_link, :bouquet_name, :size, :card_text, :items_total, :delivery_fee,
	:flowers_cost, :total_profit, :payment_status, :payment_confirmed_time,
	:florist_status, :florist_payment, :driver_assigned, :delivery_status,
	:priority, :notes, :image_link`

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	query := fmt.Sprintf("INSERT INTO orders (%s) VALUES (%s)", orderColumns, orderValues)
	_, err := r.db.NamedExecContext(ctx, query, order)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateOrderID
		}
		return fmt.Errorf("orderRepo.Create: %w", err)
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE order_id = $1", orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	clause, args := buildOrderWhere(filter)
	query := "SELECT * FROM orders" + clause + " ORDER BY delivery_date DESC, order_id DESC"

	orders := []domain.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("orderRepo.List: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) Update(ctx context.Context, order *domain.Order) error {
	query := `UPDATE orders SET
		order_link = :order_link, customer_name = :customer_name,
		receiver_name = :receiver_name, phone = :phone,
		preferred_contact = :preferred_contact, delivery_date = :delivery_date,
		time_window = :time_window, district = :district,
		full_address = :full_address, maps_link = :maps_link,
		bouquet_name = :bouquet_name, size = :size, card_text = :card_text,
		items_total = :items_total, delivery_fee = :delivery_fee,
		flowers_cost = :flowers_cost, total_profit = :total_profit,
		payment_status = :payment_status, payment_confirmed_time = :payment_confirmed_time,
		florist_status = :florist_status, florist_payment = :florist_payment,
		driver_assigned = :driver_assigned, delivery_status = :delivery_status,
		priority = :priority, notes = :notes, image_link = :image_link
		WHERE order_id = :order_id`
	result, err := r.db.NamedExecContext(ctx, query, order)
	if err != nil {
		return fmt.Errorf("orderRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, orderID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE order_id = $1", orderID)
	if err != nil {
		return fmt.Errorf("orderRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepo) IDsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids,
		"SELECT order_id FROM orders WHERE order_id LIKE $1 ORDER BY order_id", prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("orderRepo.IDsWithPrefix: %w", err)
	}
	return ids, nil
}

// buildOrderWhere assembles the WHERE clause for order listings.
func buildOrderWhere(filter domain.OrderFilter) (string, []interface{}) {
	clause := " WHERE 1=1"
	args := []interface{}{}
	argN := 1

	if filter.Search != "" {
		clause += fmt.Sprintf(
			" AND (order_id ILIKE $%d OR customer_name ILIKE $%d OR receiver_name ILIKE $%d OR phone ILIKE $%d OR bouquet_name ILIKE $%d)",
			argN, argN, argN, argN, argN)
		args = append(args, "%"+filter.Search+"%")
		argN++
	}
	if filter.PaymentStatus != "" {
		clause += fmt.Sprintf(" AND payment_status = $%d", argN)
		args = append(args, filter.PaymentStatus)
		argN++
	}
	if filter.DeliveryStatus != "" {
		clause += fmt.Sprintf(" AND delivery_status = $%d", argN)
		args = append(args, filter.DeliveryStatus)
		argN++
	}
	if filter.Priority != "" {
		clause += fmt.Sprintf(" AND priority = $%d", argN)
		args = append(args, filter.Priority)
		argN++
	}
	if filter.StartDate != "" {
		clause += fmt.Sprintf(" AND delivery_date >= $%d", argN)
		args = append(args, filter.StartDate)
		argN++
	}
	if filter.EndDate != "" {
		clause += fmt.Sprintf(" AND delivery_date <= $%d", argN)
		args = append(args, filter.EndDate)
		argN++ //nolint:ineffassign // argN kept incremented for consistency
	}

	return clause, args
}
