package suggest

import "fmt"

// RetrievalError reports that the recommender could not be reached or
// answered with an error. It unwraps to the underlying *client.NetworkError.
type RetrievalError struct {
	Query string
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to retrieve suggestions for %q: %v", e.Query, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// MalformedCandidateError reports a candidate that is missing required
// fields or carries invalid scores. Index is -1 when the whole response
// body was unreadable.
type MalformedCandidateError struct {
	Query  string
	Index  int
	Reason string
	Err    error
}

func (e *MalformedCandidateError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed recommender response for %q: %s", e.Query, e.Reason)
	}
	return fmt.Sprintf("malformed candidate %d for %q: %s", e.Index, e.Query, e.Reason)
}

func (e *MalformedCandidateError) Unwrap() error {
	return e.Err
}
