package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"foodtruck/internal/core/domain/model/order"
)

// MaxLocatorAttempts bounds the number of draws before the generator gives up.
const MaxLocatorAttempts = 64

// ErrLocatorExhausted is returned when every draw collided with an active order.
// It is operationally significant: the active locator space is nearly full.
var ErrLocatorExhausted = errors.New("locator space exhausted")

// LocatorChecker reports whether a locator is held by an active order.
type LocatorChecker interface {
	LocatorInUse(ctx context.Context, locator order.Locator) (bool, error)
}

// RandomSource yields uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// LocatorGenerator draws a letter A-Z and a three digit number and redraws on
// collision, at most maxAttempts times.
type LocatorGenerator struct {
	source      RandomSource
	maxAttempts int
}

// NewLocatorGenerator creates a generator. A nil source uses the process-wide,
// concurrency-safe generator of math/rand/v2.
func NewLocatorGenerator(source RandomSource) LocatorGenerator {
	if source == nil {
		source = globalSource{}
	}
	return LocatorGenerator{source: source, maxAttempts: MaxLocatorAttempts}
}

// Generate returns a locator that checker reports as free.
//
// Errors from checker are returned as is. After MaxLocatorAttempts collisions the
// generator fails with ErrLocatorExhausted instead of retrying forever.
func (g LocatorGenerator) Generate(ctx context.Context, checker LocatorChecker) (order.Locator, error) {
	if checker == nil {
		return order.Locator{}, errors.New("locator checker is required")
	}

	maxAttempts := g.maxAttempts
	if maxAttempts <= 0 {
		maxAttempts = MaxLocatorAttempts
	}
	source := g.source
	if source == nil {
		source = globalSource{}
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return order.Locator{}, err
		}

		locator, err := order.LocatorFromParts(source.IntN(order.LocatorLetters), source.IntN(order.LocatorNumbers))
		if err != nil {
			return order.Locator{}, err
		}

		inUse, err := checker.LocatorInUse(ctx, locator)
		if err != nil {
			return order.Locator{}, err
		}
		if !inUse {
			return locator, nil
		}
	}

	return order.Locator{}, fmt.Errorf("%w: %d attempts collided", ErrLocatorExhausted, maxAttempts)
}
