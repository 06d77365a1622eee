package ports

import (
	"context"

	"foodtruck/internal/core/domain/model/kernel"
)

// Identity resolves the caller of the current request to a role.
// Callers without a staff role resolve to kernel.RoleNone.
type Identity interface {
	CurrentRole(ctx context.Context) kernel.Role
}
