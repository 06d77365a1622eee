// Package kernel provides the shared domain primitives of the order engine.
//
// The package includes:
//   - UUID: identifier value object for catalog products
//   - ULID: time-sortable identifier value object for orders
//   - Money: non-negative fixed-point amount backed by shopspring/decimal
//   - Role: the staff role a caller acts under (admin, attendant, kitchen)
//
// Zero values of UUID, ULID and Money are invalid; use the constructors.
// All primitives are immutable and safe for concurrent use.
package kernel
