// Package generator holds what the dataset generators share: argument
// validation and the error they report it with.
package generator

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports a generator input outside its accepted range.
var ErrInvalidArgument = errors.New("invalid argument")

// CheckRows rejects non-positive row counts.
func CheckRows(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: row count must be positive, got %d", ErrInvalidArgument, n)
	}
	return nil
}
