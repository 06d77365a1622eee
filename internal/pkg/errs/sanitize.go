package errs

import (
	"fmt"
	"strings"
)

// sanitize renders a value on a single line so error messages stay log friendly.
func sanitize(value any) string {
	s := fmt.Sprintf("%v", value)
	return strings.Join(strings.Fields(s), " ")
}
