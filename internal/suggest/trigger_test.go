package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldTrigger_LengthRule(t *testing.T) {
	for n := 0; n <= 20; n++ {
		input := strings.Repeat("a", n)
		got := ShouldTrigger(input, TriggerState{})
		want := n >= 5 && n%5 == 0
		assert.Equalf(t, want, got, "length %d", n)
	}
}

func TestShouldTrigger_TrimsWhitespace(t *testing.T) {
	assert.False(t, ShouldTrigger("  abcd  ", TriggerState{}))
	assert.True(t, ShouldTrigger("  abcde\n", TriggerState{}))
}

func TestShouldTrigger_CountsRunes(t *testing.T) {
	// five runes, more than five bytes
	assert.True(t, ShouldTrigger("héllö", TriggerState{}))
	assert.True(t, ShouldTrigger("日本語です", TriggerState{}))
	// the rocket is one rune but two UTF-16 units
	assert.True(t, ShouldTrigger("ab🚀cd", TriggerState{}))
	assert.False(t, ShouldTrigger("abcd🚀🚀", TriggerState{}))
}

func TestTriggerState_IncrementalTyping(t *testing.T) {
	var state TriggerState
	text := "how do i deploy to k8s"

	fired := 0
	for i := 1; i <= 15; i++ {
		if state.Observe(text[:i]) {
			fired++
			assert.Equal(t, i, state.LastQueriedLength)
		}
	}
	assert.Equal(t, 3, fired)
	assert.Equal(t, 15, state.LastQueriedLength)
}

func TestTriggerState_RetypeSameLength(t *testing.T) {
	var state TriggerState
	assert.True(t, state.Observe("abcdefghij"))

	// delete one, retype it
	assert.False(t, state.Observe("abcdefghi"))
	assert.False(t, state.Observe("abcdefghij"))
	assert.Equal(t, 10, state.LastQueriedLength)
}

func TestTriggerState_OnlyLastLengthIsRemembered(t *testing.T) {
	state := TriggerState{LastQueriedLength: 10}
	assert.True(t, state.Observe(strings.Repeat("x", 15)))
	assert.True(t, state.Observe(strings.Repeat("x", 10)))
	assert.False(t, state.Observe(strings.Repeat("x", 10)))
}

func TestTriggerState_PasteEvaluatesFinalLengthOnly(t *testing.T) {
	var state TriggerState
	assert.True(t, state.Observe(strings.Repeat("p", 20)))
	assert.Equal(t, 20, state.LastQueriedLength)

	state = TriggerState{}
	assert.False(t, state.Observe(strings.Repeat("p", 23)))
	assert.Equal(t, 0, state.LastQueriedLength)
}
