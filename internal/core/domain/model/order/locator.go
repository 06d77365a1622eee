package order

import (
	"errors"
	"fmt"
	"regexp"

	"foodtruck/internal/pkg/errs"
	"foodtruck/internal/pkg/guard"
)

const (
	// LocatorLetters is the number of distinct leading letters (A-Z).
	LocatorLetters = 26
	// LocatorNumbers is the number of distinct three-digit suffixes (000-999).
	LocatorNumbers = 1000
	// LocatorSpace is the total number of distinct locators.
	LocatorSpace = LocatorLetters * LocatorNumbers
)

var (
	ErrLocatorIsNotConstructed = errors.New("Locator must be created via NewLocator or LocatorFromParts")

	locatorPattern = regexp.MustCompile(`^[A-Z][0-9]{3}$`)
)

// Locator is the short code a customer uses to identify an order, such as "A123".
// It is unique among active orders only; terminal orders release it.
type Locator struct {
	value string
	guard guard.ConstructorGuard
}

// NewLocator parses and validates a locator string.
func NewLocator(value string) (Locator, error) {
	if !locatorPattern.MatchString(value) {
		return Locator{}, errs.NewValueIsInvalidErrorWithCause(
			"locator",
			fmt.Errorf("%q does not match %s", value, locatorPattern.String()),
		)
	}
	return Locator{value: value, guard: guard.NewConstructorGuard()}, nil
}

// LocatorFromParts builds a locator from a letter index (0 = 'A') and a number (0..999).
func LocatorFromParts(letter, number int) (Locator, error) {
	if letter < 0 || letter >= LocatorLetters {
		return Locator{}, errs.NewValueIsOutOfRangeError("locator letter", letter, 0, LocatorLetters-1)
	}
	if number < 0 || number >= LocatorNumbers {
		return Locator{}, errs.NewValueIsOutOfRangeError("locator number", number, 0, LocatorNumbers-1)
	}
	return NewLocator(fmt.Sprintf("%c%03d", 'A'+rune(letter), number))
}

// Validate ensures the locator was built through a constructor.
func (l Locator) Validate() error {
	return l.guard.Validate(ErrLocatorIsNotConstructed)
}

func (l Locator) String() string {
	return l.value
}

// IsEqual compares two locators by value.
func (l Locator) IsEqual(other Locator) bool {
	return l.value == other.value
}
