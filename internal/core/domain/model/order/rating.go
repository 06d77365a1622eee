package order

import (
	"errors"
	"unicode/utf8"

	"foodtruck/internal/pkg/errs"
	"foodtruck/internal/pkg/guard"
)

const (
	MinRating = 1
	MaxRating = 5

	// MaxCommentLength bounds the rating comment, in characters.
	MaxCommentLength = 500
)

var (
	ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating constructor")

	// ErrRatingOutOfRange is the cause of every rating outside [MinRating, MaxRating].
	ErrRatingOutOfRange = errors.New("rating is out of range")
)

// Rating is post-delivery customer feedback.
type Rating struct {
	value   int
	comment string
	guard   guard.ConstructorGuard
}

// NewRating validates the score and the optional comment.
func NewRating(value int, comment string) (Rating, error) {
	if value < MinRating || value > MaxRating {
		return Rating{}, errs.NewValueIsOutOfRangeErrorWithCause("rating", value, MinRating, MaxRating, ErrRatingOutOfRange)
	}
	if n := utf8.RuneCountInString(comment); n > MaxCommentLength {
		return Rating{}, errs.NewValueIsOutOfRangeError("comment length", n, 0, MaxCommentLength)
	}
	return Rating{value: value, comment: comment, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the rating was created through NewRating.
func (r Rating) Validate() error {
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// Value returns the score.
func (r Rating) Value() int {
	return r.value
}

// Comment returns the optional free-text comment.
func (r Rating) Comment() string {
	return r.comment
}
