package component

import (
	"strings"

	"github.com/google/uuid"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/prefs"
)

// SaveSearch renders a "Save This Search" button when a turn produced
// results and the user's original query is known.
type SaveSearch struct{}

func (c *SaveSearch) Name() string  { return "save_search" }
func (c *SaveSearch) Priority() int { return 60 }

func (c *SaveSearch) Matches(state *ps.StateRecord, _ prefs.Overlay) bool {
	return state.HasResults() && strings.TrimSpace(state.UserQuery) != ""
}

func (c *SaveSearch) Render(state *ps.StateRecord, _ prefs.Overlay) (*ps.Widget, error) {
	button := ps.Button("Save This Search", "star", ps.Action{
		Type: ps.ActionSaveSearch,
		Payload: map[string]any{
			"query":    state.UserQuery,
			"searchId": "search_" + uuid.NewString()[:8],
		},
	})
	button.Variant = "outline"
	button.Color = "primary"

	row := ps.Row(button)
	row.Gap = 2
	row.Align = "center"

	return &ps.Widget{
		ID:    ps.GenerateWidgetID(),
		Shape: ps.ShapeCard,
		Root:  ps.Node{Type: ps.NodeCard, Children: []ps.Node{row}},
	}, nil
}
