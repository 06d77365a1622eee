package productrepo

import (
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Available bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Price:     aggregate.Price().Amount(),
		Available: aggregate.IsAvailable(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, price, dto.Available)
}
