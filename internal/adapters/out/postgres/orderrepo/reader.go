package orderrepo

import (
	"context"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderReader implements ports.OrderReader outside of any transaction.
type GormOrderReader struct {
	db *gorm.DB
}

func NewGormOrderReader(db *gorm.DB) *GormOrderReader {
	return &GormOrderReader{db: db}
}

func (r *GormOrderReader) FindByID(ctx context.Context, id kernel.ULID) (*order.Order, error) {
	return load(ctx, r.db, id)
}

// FindActive returns non-terminal orders, oldest first.
func (r *GormOrderReader) FindActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("status < ?", int(order.Delivered)).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewInfrastructureError("list active orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
