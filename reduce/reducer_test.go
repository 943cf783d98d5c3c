package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ps "github.com/spetersoncode/propstream"
)

func human(content string) ps.Message {
	return ps.Message{Type: ps.RoleHuman, Content: content}
}

func assistant(content string) ps.Message {
	return ps.Message{Type: ps.RoleAssistant, Content: content}
}

func strPtr(s string) *string { return &s }

func TestAssistantMessage_AfterLastHumanRule(t *testing.T) {
	tests := []struct {
		name     string
		messages []ps.Message
		want     string
		ok       bool
	}{
		{
			name:     "single turn",
			messages: []ps.Message{human("hi"), assistant("hello")},
			want:     "hello",
			ok:       true,
		},
		{
			name: "stale reply from earlier turn is not resurfaced",
			messages: []ps.Message{
				human("first"), assistant("old reply"), human("second"),
			},
			ok: false,
		},
		{
			name: "fresh reply after second turn",
			messages: []ps.Message{
				human("first"), assistant("old reply"),
				human("second"), assistant("new reply"),
			},
			want: "new reply",
			ok:   true,
		},
		{
			name: "picks last of several fresh replies",
			messages: []ps.Message{
				human("q"), assistant("draft"), assistant("final"),
			},
			want: "final",
			ok:   true,
		},
		{
			name:     "assistant only, no human",
			messages: []ps.Message{assistant("greeting")},
			want:     "greeting",
			ok:       true,
		},
		{
			name:     "no messages",
			messages: nil,
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := AssistantMessage(&ps.StateRecord{Messages: tt.messages})
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, msg.Content)
			}
		})
	}
}

func TestAssistantMessage_NeverBeforeLatestHuman(t *testing.T) {
	// Property from the contract: the returned message must sit after the
	// last human message in the same record.
	rec := &ps.StateRecord{Messages: []ps.Message{
		assistant("a0"), human("h0"), assistant("a1"), human("h1"), assistant("a2"),
	}}

	msg, ok := AssistantMessage(rec)
	require.True(t, ok)

	lastHuman := -1
	pos := -1
	for i, m := range rec.Messages {
		if m.IsHuman() {
			lastHuman = i
		}
		if m.Content == msg.Content {
			pos = i
		}
	}
	assert.Greater(t, pos, lastHuman)
}

func TestReducer_Terminal(t *testing.T) {
	r := New()

	t.Run("no assistant message", func(t *testing.T) {
		rec := &ps.StateRecord{Messages: []ps.Message{human("hi")}}
		assert.False(t, r.Terminal(rec))
	})

	t.Run("assistant with no pending routing", func(t *testing.T) {
		rec := &ps.StateRecord{Messages: []ps.Message{human("hi"), assistant("ok")}}
		assert.True(t, r.Terminal(rec))
	})

	t.Run("assistant with pending routing", func(t *testing.T) {
		rec := &ps.StateRecord{
			Messages:      []ps.Message{human("hi"), assistant("ok")},
			RoutingAction: strPtr("query_properties"),
		}
		assert.False(t, r.Terminal(rec))
	})

	t.Run("handoff is terminal", func(t *testing.T) {
		rec := &ps.StateRecord{
			Messages:      []ps.Message{human("hi"), assistant("bye")},
			RoutingAction: strPtr(ps.RoutingActionHandoff),
		}
		assert.True(t, r.Terminal(rec))
	})

	t.Run("nil record", func(t *testing.T) {
		assert.False(t, r.Terminal(nil))
	})
}

func TestReducer_Observe(t *testing.T) {
	r := New()

	_, ok := r.Assistant()
	assert.False(t, ok)
	assert.Nil(t, r.Last())

	// First record carries results but no fresh assistant text.
	first := &ps.StateRecord{
		Messages:     []ps.Message{human("search")},
		QueryResults: []ps.Listing{{Code: "P1"}},
	}
	r.Observe(first)
	assert.Equal(t, first, r.Last())
	_, ok = r.Assistant()
	assert.False(t, ok)

	// Second record carries the reply but no results; the last record is
	// still replaced, and the assistant message is captured.
	second := &ps.StateRecord{
		Messages: []ps.Message{human("search"), assistant("found one")},
	}
	r.Observe(second)
	assert.Equal(t, second, r.Last())

	msg, ok := r.Assistant()
	require.True(t, ok)
	assert.Equal(t, "found one", msg.Content)

	// A later record without a fresh reply keeps the captured assistant.
	third := &ps.StateRecord{Messages: []ps.Message{human("search"), assistant("found one"), human("next")}}
	r.Observe(third)
	msg, ok = r.Assistant()
	require.True(t, ok)
	assert.Equal(t, "found one", msg.Content)
	assert.Equal(t, third, r.Last())
}
