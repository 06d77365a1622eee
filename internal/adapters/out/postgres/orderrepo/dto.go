package orderrepo

import (
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActiveLocatorIndex is the partial unique index that keeps locators unique among
// non-terminal orders.
const ActiveLocatorIndex = "orders_active_locator_idx"

// OrderDTO is the database representation of an order.
type OrderDTO struct {
	ID            string          `gorm:"type:char(26);primaryKey"`
	Locator       string          `gorm:"type:char(4);not null"`
	Status        int             `gorm:"not null;index"`
	Notes         string          `gorm:"type:varchar(500);not null;default:''"`
	Rating        *int            `gorm:"type:smallint"`
	RatingComment string          `gorm:"type:varchar(500);not null;default:''"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	UpdatedAt     time.Time       `gorm:"not null"`
	Version       int             `gorm:"not null;default:1"`
	Items         []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps insertion order.
type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   string          `gorm:"type:char(26);not null;index"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:        aggregate.ID().String(),
		Locator:   aggregate.Locator().String(),
		Status:    int(aggregate.Status()),
		Notes:     aggregate.Notes(),
		Total:     aggregate.Total().Amount(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Version:   aggregate.Version(),
	}

	if r := aggregate.Rating(); r != nil {
		value := r.Value()
		dto.Rating = &value
		dto.RatingComment = r.Comment()
	}

	for idx, item := range aggregate.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:   dto.ID,
			Position:  idx,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.ULIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	locator, err := order.NewLocator(dto.Locator)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}

		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var rating *order.Rating
	if dto.Rating != nil {
		r, ratingErr := order.NewRating(*dto.Rating, dto.RatingComment)
		if ratingErr != nil {
			return nil, ratingErr
		}
		rating = &r
	}

	return order.RestoreOrder(
		id,
		locator,
		order.Status(dto.Status),
		items,
		dto.Notes,
		rating,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Version,
	)
}
