package kernel

import (
	"fmt"
	"time"

	"foodtruck/internal/pkg/errs"

	"github.com/oklog/ulid/v2"
)

// ErrULIDIsNotConstructed indicates a zero-value ULID.
var ErrULIDIsNotConstructed = errs.NewValueIsRequiredError("ULID must be created via NewULID or ULIDFromString")

// ULID is a lexicographically sortable identifier. Orders are identified by it so
// that ordering by id matches ordering by creation time.
type ULID struct {
	id ulid.ULID
}

// NewULID generates a new ULID using the package's monotonic entropy source.
func NewULID() ULID {
	return ULID{id: ulid.Make()}
}

// ULIDFromString parses the 26-character Crockford base32 form of a ULID.
func ULIDFromString(s string) (ULID, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return ULID{}, errs.NewValueIsInvalidErrorWithCause("ulid", fmt.Errorf("invalid ULID format: %w", err))
	}
	parsed := ULID{id: id}
	if err = parsed.Validate(); err != nil {
		return ULID{}, err
	}
	return parsed, nil
}

func (u ULID) String() string {
	return u.id.String()
}

// Time returns the timestamp component of the ULID.
func (u ULID) Time() time.Time {
	return ulid.Time(u.id.Time())
}

// IsEqual reports whether both ULIDs hold the same value.
func (u ULID) IsEqual(other ULID) bool {
	return u.id.Compare(other.id) == 0
}

// Validate returns ErrULIDIsNotConstructed for the zero ULID.
func (u ULID) Validate() error {
	if u.id == (ulid.ULID{}) {
		return ErrULIDIsNotConstructed
	}
	return nil
}
