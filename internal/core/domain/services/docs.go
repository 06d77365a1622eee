// Package services provides domain services of the order engine that do not belong
// to a single aggregate.
//
// The package includes:
//   - LocatorGenerator: draws customer-facing locators that are unique among active orders
//   - TransitionPolicy: the role-to-allowed-transitions policy handed to command handlers
//
// Both services are stateless apart from their injected collaborators and are safe
// for concurrent use when those collaborators are.
package services
