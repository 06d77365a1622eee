// Package order provides the Order aggregate of the food-truck order engine.
//
// The package includes:
//   - Order: the aggregate root owning its items, locator, status, rating and total
//   - Item: an immutable order line with a snapshotted unit price
//   - Status: the workflow state machine and its transition table
//   - Locator: the short customer-facing code such as "A123"
//   - Rating: post-delivery feedback in the range 1..5
//   - Event: domain events recorded by the aggregate for the outbox
//
// Key business rules:
//   - An order has at least one item and every quantity is positive
//   - The total always equals the sum of unit price × quantity over all items
//   - Status follows Pending -> Preparing -> Ready -> Delivered; every non-terminal
//     status may also move to Cancelled; Delivered and Cancelled are terminal
//   - Only delivered orders can be rated; only pending orders can be deleted
package order
