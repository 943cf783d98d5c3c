// Package reduce collapses the upstream state stream into a single terminal
// state: the last-seen full record plus the newest assistant message of the
// current turn.
package reduce

import (
	ps "github.com/spetersoncode/propstream"
)

// Reducer consumes ordered state records and tracks the terminal state.
// It is used by a single turn and is not safe for concurrent use.
type Reducer struct {
	last      *ps.StateRecord
	assistant *ps.Message
}

// New creates an empty Reducer.
func New() *Reducer {
	return &Reducer{}
}

// Observe folds one state record into the reducer. Every record becomes the
// new "last full record" regardless of terminality, because structured
// payload fields can arrive on records that carry no fresh assistant
// message. The assistant message is replaced only when the record contains
// one for the current turn.
func (r *Reducer) Observe(rec *ps.StateRecord) {
	if rec == nil {
		return
	}
	r.last = rec
	if msg, ok := AssistantMessage(rec); ok {
		r.assistant = &msg
	}
}

// Last returns the most recent full state record, or nil before the first
// Observe.
func (r *Reducer) Last() *ps.StateRecord {
	return r.last
}

// Assistant returns the newest assistant message observed for the current
// turn, if any.
func (r *Reducer) Assistant() (ps.Message, bool) {
	if r.assistant == nil {
		return ps.Message{}, false
	}
	return *r.assistant, true
}

// Terminal reports whether rec completes the turn: an assistant message for
// the current turn exists and either no routing decision is pending or the
// decision is an explicit handoff. Once Terminal returns true the caller
// stops consuming frames; the upstream may keep emitting low-value
// intermediate records.
func (r *Reducer) Terminal(rec *ps.StateRecord) bool {
	if rec == nil {
		return false
	}
	if _, ok := AssistantMessage(rec); !ok {
		return false
	}
	if rec.RoutingAction == nil {
		return true
	}
	return *rec.RoutingAction == ps.RoutingActionHandoff
}

// AssistantMessage returns the last assistant message positioned strictly
// after the last human message in the record. A "last assistant overall"
// scan would be wrong once a conversation has more than one turn: it would
// re-surface a stale reply from an earlier turn.
func AssistantMessage(rec *ps.StateRecord) (ps.Message, bool) {
	if rec == nil {
		return ps.Message{}, false
	}

	lastHuman := -1
	for i, msg := range rec.Messages {
		if msg.IsHuman() {
			lastHuman = i
		}
	}

	for i := len(rec.Messages) - 1; i > lastHuman; i-- {
		if rec.Messages[i].IsAssistant() {
			return rec.Messages[i], true
		}
	}
	return ps.Message{}, false
}
