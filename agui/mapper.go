package agui

import (
	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/composer"
)

// RoleAssistant is the AG-UI role for agent-authored messages.
const RoleAssistant = "assistant"

// Custom event names carrying the non-text parts of a turn.
const (
	CustomWidget         = "widget"
	CustomThreadMetadata = "thread_metadata"
)

// Mapper converts composed UIEvents to AG-UI events for a single run.
//
// Create a new Mapper for each run using NewMapper. The Mapper is not safe
// for concurrent use; each run should have its own.
type Mapper struct {
	threadID string
	runID    string
}

// NewMapper creates a Mapper for a single run. Empty IDs are generated.
func NewMapper(threadID, runID string) *Mapper {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	return &Mapper{
		threadID: threadID,
		runID:    runID,
	}
}

// ThreadID returns the thread ID for this mapper.
func (m *Mapper) ThreadID() string {
	return m.threadID
}

// RunID returns the run ID for this mapper.
func (m *Mapper) RunID() string {
	return m.runID
}

// RunStarted returns a RUN_STARTED event.
func (m *Mapper) RunStarted() events.Event {
	return events.NewRunStartedEvent(m.threadID, m.runID)
}

// RunFinished returns a RUN_FINISHED event.
func (m *Mapper) RunFinished() events.Event {
	return events.NewRunFinishedEvent(m.threadID, m.runID)
}

// RunError returns a RUN_ERROR event.
func (m *Mapper) RunError(err error) events.Event {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return events.NewRunErrorEvent(msg)
}

// MapEvent converts one UIEvent to its AG-UI representation. A completed
// text message expands to the Start-Content-End triple; widgets and thread
// metadata ride on custom events.
func (m *Mapper) MapEvent(e ps.UIEvent) []events.Event {
	switch e.Type {
	case ps.UIEventText:
		if e.Message == nil {
			return nil
		}
		id := e.Message.ID
		if id == "" {
			id = events.GenerateMessageID()
		}
		out := []events.Event{
			events.NewTextMessageStartEvent(id, events.WithRole(RoleAssistant)),
		}
		if e.Message.Text != "" {
			out = append(out, events.NewTextMessageContentEvent(id, e.Message.Text))
		}
		return append(out, events.NewTextMessageEndEvent(id))

	case ps.UIEventWidget:
		if e.Widget == nil {
			return nil
		}
		return []events.Event{
			events.NewCustomEvent(CustomWidget, events.WithValue(e.Widget)),
		}

	case ps.UIEventThreadMetadata:
		if e.Metadata == nil {
			return nil
		}
		return []events.Event{
			events.NewCustomEvent(CustomThreadMetadata, events.WithValue(e.Metadata)),
		}
	}
	return nil
}

// MapTurn frames a composed turn in run lifecycle events: RUN_STARTED, the
// mapped turn events, then RUN_FINISHED or RUN_ERROR.
func (m *Mapper) MapTurn(turn composer.Turn) []events.Event {
	out := []events.Event{m.RunStarted()}
	for _, e := range turn.Events {
		out = append(out, m.MapEvent(e)...)
	}
	if turn.State == composer.StateErrored {
		return append(out, m.RunError(turn.Err))
	}
	return append(out, m.RunFinished())
}
