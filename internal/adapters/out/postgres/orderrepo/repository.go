package orderrepo

import (
	"context"
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository with GORM.
//
// Updates and deletes are conditional on the version the aggregate was loaded
// with, so of two transactions that read the same order only the first to write
// succeeds.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates an order repository bound to db, which is
// usually the transaction of a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isLocatorViolation(err) {
			return ports.ErrLocatorTaken
		}
		return errs.NewInfrastructureError("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update writes status, rating and timestamps. Items and total never change
// after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":         dto.Status,
			"rating":         dto.Rating,
			"rating_comment": dto.RatingComment,
			"updated_at":     dto.UpdatedAt,
			"version":        aggregate.Version() + 1,
		})
	if result.Error != nil {
		return errs.NewInfrastructureError("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Delete removes the order and its items.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", id, aggregate.Version()).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return errs.NewInfrastructureError("delete order", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&OrderItemDTO{}).Error; err != nil {
		return errs.NewInfrastructureError("delete order items", err)
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

// Get loads an order with its items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ULID) (*order.Order, error) {
	return load(ctx, r.db, id)
}

// LocatorInUse reports whether a non-terminal order holds locator.
func (r *GormOrderRepository) LocatorInUse(ctx context.Context, locator order.Locator) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("locator = ? AND status < ?", locator.String(), int(order.Delivered)).
		Count(&count).Error
	if err != nil {
		return false, errs.NewInfrastructureError("check locator", err)
	}
	return count > 0, nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().String()).Count(&count).Error; err != nil {
		return errs.NewInfrastructureError("check order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidErrorWithCause(
		"order",
		errors.New("order was modified concurrently, reload and retry"),
	)
}

func load(ctx context.Context, db *gorm.DB, id kernel.ULID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewInfrastructureError("get order", err)
	}

	return toDomain(dto)
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func isLocatorViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == ActiveLocatorIndex
}
