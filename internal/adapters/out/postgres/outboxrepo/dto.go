package outboxrepo

import (
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"

	"github.com/google/uuid"
)

type OutboxDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type        string     `gorm:"type:varchar(64);not null"`
	AggregateID string     `gorm:"type:varchar(64);not null;index"`
	Payload     string     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	SentAt      *time.Time `gorm:"index"`
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

func fromMessage(msg ports.OutboxMessage) OutboxDTO {
	return OutboxDTO{
		ID:          msg.ID.Bytes(),
		Type:        msg.Type,
		AggregateID: msg.AggregateID,
		Payload:     string(msg.Payload),
		OccurredAt:  msg.OccurredAt,
		SentAt:      msg.SentAt,
	}
}

func toMessage(dto OutboxDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		Type:        dto.Type,
		AggregateID: dto.AggregateID,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt.UTC(),
		SentAt:      dto.SentAt,
	}, nil
}
