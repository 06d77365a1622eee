package postgres

import (
	"context"
	"fmt"

	"foodtruck/internal/adapters/out/postgres/orderrepo"
	"foodtruck/internal/adapters/out/postgres/outboxrepo"
	"foodtruck/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Locators are unique among non-terminal
// orders only, which GORM tags cannot express, so that index is created by hand.
func Migrate(ctx context.Context, db *gorm.DB) error {
	conn := db.WithContext(ctx)

	if err := conn.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&outboxrepo.OutboxDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	activeLocator := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON orders (locator) WHERE status < 4",
		orderrepo.ActiveLocatorIndex,
	)
	if err := conn.Exec(activeLocator).Error; err != nil {
		return fmt.Errorf("create active locator index: %w", err)
	}

	return nil
}
