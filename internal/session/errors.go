package session

import (
	"errors"
	"fmt"
)

// StaleResponseError marks a retrieval result that was superseded by a
// newer request and discarded. It is not meant for display.
type StaleResponseError struct {
	Seq    uint64
	Latest uint64
}

func (e *StaleResponseError) Error() string {
	return fmt.Sprintf("stale suggestion response %d (latest issued %d)", e.Seq, e.Latest)
}

// IsStale reports whether err is a *StaleResponseError.
func IsStale(err error) bool {
	var se *StaleResponseError
	return errors.As(err, &se)
}
