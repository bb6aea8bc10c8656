package suggest

import (
	"strings"
	"unicode/utf8"
)

// TriggerStep is the length interval at which suggestions are refreshed.
const TriggerStep = 5

// TriggerState remembers the trimmed length of the last issued query.
type TriggerState struct {
	LastQueriedLength int `json:"last_queried_length"`
}

// ShouldTrigger reports whether input warrants a new suggestion request.
// It fires only when the trimmed length is a positive multiple of
// TriggerStep that differs from the last queried length.
func ShouldTrigger(input string, state TriggerState) bool {
	n := trimmedLen(input)
	return n >= TriggerStep && n%TriggerStep == 0 && n != state.LastQueriedLength
}

// Observe evaluates ShouldTrigger and records the new length when it fires.
func (s *TriggerState) Observe(input string) bool {
	if !ShouldTrigger(input, *s) {
		return false
	}
	s.LastQueriedLength = trimmedLen(input)
	return true
}

// trimmedLen counts runes, so a character outside the BMP counts once
// where a UTF-16 length would count it twice.
func trimmedLen(input string) int {
	return utf8.RuneCountInString(strings.TrimSpace(input))
}
