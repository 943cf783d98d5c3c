package propstream

import "encoding/json"

// RoutingActionHandoff is the routing value the agent emits when it hands
// the conversation off; it counts as a terminal condition.
const RoutingActionHandoff = "handoff"

// StateRecord is one parsed frame of the upstream state stream: a full
// snapshot of agent conversation state after a graph node ran. Later records
// supersede earlier ones; structured payload fields may arrive on records
// that carry no fresh assistant message.
type StateRecord struct {
	// Messages is the chronological conversation transcript.
	Messages []Message `json:"messages"`

	// QueryResults holds structured listing results, when the turn was a
	// property search.
	QueryResults []Listing `json:"query_results,omitempty"`

	// SelectedFilters describes the search criteria the agent applied.
	SelectedFilters []Filter `json:"selected_filters,omitempty"`

	// RoutingAction is the pending routing decision. Nil means no routing
	// is pending; RoutingActionHandoff means the turn is complete.
	RoutingAction *string `json:"routing_action,omitempty"`

	RoutingReasoning  string  `json:"routing_reasoning,omitempty"`
	RoutingConfidence float64 `json:"routing_confidence,omitempty"`

	// DetectedHandoffTool names the tool that triggered a handoff, if any.
	DetectedHandoffTool string `json:"detected_handoff_tool,omitempty"`

	// TitleSummary is an optional upstream-provided summary of the
	// conversation, used for thread titles.
	TitleSummary string `json:"title_summary,omitempty"`

	// UserQuery echoes the raw user query that produced this state.
	UserQuery string `json:"_user_query,omitempty"`
}

// Filter describes one active search criterion.
type Filter struct {
	FieldName string `json:"field_name"`
	Value     string `json:"value"`
	Operator  string `json:"operator,omitempty"`
}

// ParseStateRecord decodes a raw stream frame into a StateRecord.
// Unknown fields are ignored; a decode failure yields a malformed-data error.
func ParseStateRecord(raw json.RawMessage) (*StateRecord, error) {
	var rec StateRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, NewMalformedError("undecodable state record", err)
	}
	return &rec, nil
}

// HasResults returns true when the record carries a non-empty result list.
func (r *StateRecord) HasResults() bool {
	return r != nil && len(r.QueryResults) > 0
}
