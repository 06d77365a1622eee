package outboxrepo

import (
	"context"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository with GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OutboxDTO, 0, len(messages))
	for _, msg := range messages {
		dtos = append(dtos, fromMessage(msg))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errs.NewInfrastructureError("add outbox messages", err)
	}
	return nil
}

// Pending locks the returned rows so concurrent relays skip them.
func (r *GormOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewInfrastructureError("list pending outbox messages", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		msg, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	err := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ?", raw).
		Update("sent_at", sentAt).Error
	if err != nil {
		return errs.NewInfrastructureError("mark outbox messages sent", err)
	}
	return nil
}
