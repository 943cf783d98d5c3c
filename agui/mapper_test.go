package agui

import (
	"errors"
	"testing"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/composer"
)

func TestNewMapper(t *testing.T) {
	t.Run("with provided IDs", func(t *testing.T) {
		m := NewMapper("thread-123", "run-456")
		if m.ThreadID() != "thread-123" {
			t.Errorf("expected thread ID 'thread-123', got %q", m.ThreadID())
		}
		if m.RunID() != "run-456" {
			t.Errorf("expected run ID 'run-456', got %q", m.RunID())
		}
	})

	t.Run("generates IDs when empty", func(t *testing.T) {
		m := NewMapper("", "")
		if m.ThreadID() == "" {
			t.Error("expected generated thread ID, got empty")
		}
		if m.RunID() == "" {
			t.Error("expected generated run ID, got empty")
		}
	})
}

func TestMapper_MapEvent_Text(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	out := m.MapEvent(ps.NewTextEvent("Showing 2 of 2 properties"))
	if len(out) != 3 {
		t.Fatalf("expected 3 events, got %d", len(out))
	}
	if out[0].Type() != events.EventTypeTextMessageStart {
		t.Errorf("expected TEXT_MESSAGE_START, got %s", out[0].Type())
	}
	if out[1].Type() != events.EventTypeTextMessageContent {
		t.Errorf("expected TEXT_MESSAGE_CONTENT, got %s", out[1].Type())
	}
	if out[2].Type() != events.EventTypeTextMessageEnd {
		t.Errorf("expected TEXT_MESSAGE_END, got %s", out[2].Type())
	}
}

func TestMapper_MapEvent_Widget(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	w := ps.Widget{ID: "widget_1", Shape: ps.ShapeList, Root: ps.ListView(20)}
	out := m.MapEvent(ps.NewWidgetEvent(w))
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}

	custom, ok := out[0].(*events.CustomEvent)
	if !ok {
		t.Fatalf("expected *events.CustomEvent, got %T", out[0])
	}
	if custom.Name != CustomWidget {
		t.Errorf("expected name %q, got %q", CustomWidget, custom.Name)
	}
}

func TestMapper_MapEvent_ThreadMetadata(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	out := m.MapEvent(ps.NewTitleEvent("Beach houses"))
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}

	custom, ok := out[0].(*events.CustomEvent)
	if !ok {
		t.Fatalf("expected *events.CustomEvent, got %T", out[0])
	}
	if custom.Name != CustomThreadMetadata {
		t.Errorf("expected name %q, got %q", CustomThreadMetadata, custom.Name)
	}
}

func TestMapper_MapEvent_EmptyPayloads(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	for _, e := range []ps.UIEvent{
		{Type: ps.UIEventText},
		{Type: ps.UIEventWidget},
		{Type: ps.UIEventThreadMetadata},
	} {
		if out := m.MapEvent(e); out != nil {
			t.Errorf("expected nil for empty %s event, got %d events", e.Type, len(out))
		}
	}
}

func TestMapper_MapTurn_Success(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	turn := composer.Turn{
		State:  composer.StateDone,
		Events: []ps.UIEvent{ps.NewTextEvent("Hello")},
	}

	out := m.MapTurn(turn)
	if len(out) != 5 {
		t.Fatalf("expected 5 events, got %d", len(out))
	}
	if out[0].Type() != events.EventTypeRunStarted {
		t.Errorf("expected RUN_STARTED first, got %s", out[0].Type())
	}
	if out[len(out)-1].Type() != events.EventTypeRunFinished {
		t.Errorf("expected RUN_FINISHED last, got %s", out[len(out)-1].Type())
	}
}

func TestMapper_MapTurn_Errored(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	turn := composer.Turn{
		State:  composer.StateErrored,
		Err:    errors.New("upstream down"),
		Events: []ps.UIEvent{ps.NewTextEvent("I'm sorry, I encountered an error")},
	}

	out := m.MapTurn(turn)
	if out[len(out)-1].Type() != events.EventTypeRunError {
		t.Errorf("expected RUN_ERROR last, got %s", out[len(out)-1].Type())
	}
}
