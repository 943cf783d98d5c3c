package component

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/prefs"
)

// stubComponent renders a one-node card tagged with its own name so tests
// can verify ordering.
type stubComponent struct {
	name     string
	priority int
	matches  bool
	err      error
	panics   bool
}

func (s *stubComponent) Name() string  { return s.name }
func (s *stubComponent) Priority() int { return s.priority }

func (s *stubComponent) Matches(*ps.StateRecord, prefs.Overlay) bool { return s.matches }

func (s *stubComponent) Render(*ps.StateRecord, prefs.Overlay) (*ps.Widget, error) {
	if s.panics {
		panic("render exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	return &ps.Widget{
		ID:    s.name,
		Shape: ps.ShapeCard,
		Root:  ps.Text(s.name),
	}, nil
}

func widgetIDs(widgets []ps.Widget) []string {
	ids := make([]string, 0, len(widgets))
	for _, w := range widgets {
		ids = append(ids, w.ID)
	}
	return ids
}

func TestRegistry_PriorityOrderRegardlessOfRegistration(t *testing.T) {
	low := &stubComponent{name: "low", priority: 45, matches: true}
	high := &stubComponent{name: "high", priority: 50, matches: true}

	forward := NewRegistry()
	forward.Register(low, high)

	reversed := NewRegistry()
	reversed.Register(high, low)

	state := &ps.StateRecord{}
	overlay := prefs.NewOverlay()

	assert.Equal(t, []string{"low", "high"}, widgetIDs(forward.Widgets(state, overlay)))
	assert.Equal(t, []string{"low", "high"}, widgetIDs(reversed.Widgets(state, overlay)))
}

func TestRegistry_SkipsNonMatching(t *testing.T) {
	r := NewRegistry()
	r.Register(
		&stubComponent{name: "a", priority: 10, matches: false},
		&stubComponent{name: "b", priority: 20, matches: true},
	)

	got := r.Widgets(&ps.StateRecord{}, prefs.NewOverlay())
	assert.Equal(t, []string{"b"}, widgetIDs(got))
}

func TestRegistry_ErrorDoesNotAbortOthers(t *testing.T) {
	r := NewRegistry()
	r.Register(
		&stubComponent{name: "first", priority: 10, matches: true},
		&stubComponent{name: "broken", priority: 20, matches: true, err: errors.New("boom")},
		&stubComponent{name: "last", priority: 30, matches: true},
	)

	got := r.Widgets(&ps.StateRecord{}, prefs.NewOverlay())
	assert.Equal(t, []string{"first", "last"}, widgetIDs(got))
}

func TestRegistry_PanicDoesNotAbortOthers(t *testing.T) {
	r := NewRegistry()
	r.Register(
		&stubComponent{name: "panicking", priority: 10, matches: true, panics: true},
		&stubComponent{name: "survivor", priority: 20, matches: true},
	)

	got := r.Widgets(&ps.StateRecord{}, prefs.NewOverlay())
	assert.Equal(t, []string{"survivor"}, widgetIDs(got))
}

func TestRegistry_Default(t *testing.T) {
	r := Default()
	require.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"filters_card", "listing_list", "save_search"}, r.Names())
}
