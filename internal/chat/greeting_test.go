package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreeter_IsGreeting(t *testing.T) {
	g := NewGreeter(greetingInputs, greetingResponses, nil)
	assert.True(t, g.IsGreeting("hi"))
	assert.True(t, g.IsGreeting("HELLO"))
	assert.False(t, g.IsGreeting("history"))
}

func TestGreeter_Detect(t *testing.T) {
	g := NewGreeter(greetingInputs, greetingResponses, nil)
	assert.True(t, g.Detect("hi, how are you"))
	assert.True(t, g.Detect("What's up?"))
	assert.False(t, g.Detect("this is not one"))
}

func TestGreeter_PickReplyUsesPicker(t *testing.T) {
	var gotN int
	g := NewGreeter(greetingInputs, greetingResponses, func(n int) int { gotN = n; return 4 })
	assert.Equal(t, "I am glad! You are talking to me", g.PickReply())
	assert.Equal(t, len(greetingResponses), gotN)
}

func TestGreeter_DefaultPickerStaysInSet(t *testing.T) {
	g := NewGreeter(greetingInputs, greetingResponses, nil)
	for i := 0; i < 20; i++ {
		assert.Contains(t, greetingResponses, g.PickReply())
	}
}
