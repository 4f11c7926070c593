package orders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
	"github.com/shopkartlabs/shopkart-backend/pkg/enums"
	"github.com/shopkartlabs/shopkart-backend/pkg/pagination"
)

// Stats is the admin dashboard rollup.
type Stats struct {
	TotalOrders   int64 `json:"total_orders"`
	PendingOrders int64 `json:"pending_orders"`
	RevenuePaise  int64 `json:"revenue_paise"`
}

// List is one page of orders.
type List struct {
	Orders     []models.Order
	NextCursor string
}

// Repository persists order snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists the order with its line items in one transaction.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// FindByNumber loads an order with its items by its public order number.
func (r *Repository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns one cursor page of orders, newest first, optionally filtered
// by status.
func (r *Repository) List(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*List, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	cursor, err := pagination.Decode(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := &List{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}.Encode()
	}
	result.Orders = rows
	return result, nil
}

// UpdateStatus persists a status change for the order number.
func (r *Repository) UpdateStatus(ctx context.Context, orderNumber string, status enums.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_number = ?", orderNumber).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats aggregates order counts and the revenue of all non-cancelled orders.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats

	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status NOT IN ?", []enums.OrderStatus{enums.OrderStatusCancelled}).
		Select("COALESCE(SUM(total_paise), 0)").
		Scan(&stats.RevenuePaise).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
