package component

import (
	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/prefs"
)

// DefaultMaxItems caps how many listings a single list widget shows.
const DefaultMaxItems = 20

// ListingList renders the structured query results as a list widget. Items
// the user has hidden are filtered out; favorited items are marked. When the
// overlay hides every result the component contributes nothing rather than
// an empty shell.
type ListingList struct {
	MaxItems int
}

// NewListingList creates a ListingList with the default item cap.
func NewListingList() *ListingList {
	return &ListingList{MaxItems: DefaultMaxItems}
}

func (c *ListingList) Name() string  { return "listing_list" }
func (c *ListingList) Priority() int { return 50 }

func (c *ListingList) Matches(state *ps.StateRecord, _ prefs.Overlay) bool {
	return state.HasResults()
}

func (c *ListingList) Render(state *ps.StateRecord, overlay prefs.Overlay) (*ps.Widget, error) {
	visible := make([]ps.Listing, 0, len(state.QueryResults))
	for _, l := range state.QueryResults {
		if overlay.IsHidden(l.Key()) {
			continue
		}
		visible = append(visible, l)
	}
	if len(visible) == 0 {
		return nil, nil
	}
	if len(visible) > c.MaxItems {
		visible = visible[:c.MaxItems]
	}

	items := make([]ps.Node, 0, len(visible))
	for _, l := range visible {
		items = append(items, listingItem(l, overlay.IsFavorite(l.Key())))
	}

	return &ps.Widget{
		ID:    ps.GenerateWidgetID(),
		Shape: ps.ShapeList,
		Root:  ps.ListView(c.MaxItems, items...),
	}, nil
}

// listingItem builds one list entry: image, summary column, action buttons.
// Clicking the item opens the detail view on the client.
func listingItem(l ps.Listing, favorited bool) ps.Node {
	summary := []ps.Node{titleText(l.DisplayTitle())}

	price := ps.Badge(l.PriceLabel(), "success")
	price.Size = "md"
	summary = append(summary, price)

	if s := l.Specs(); s != "" {
		summary = append(summary, ps.Caption(s))
	}
	if l.Description != "" {
		desc := ps.Caption(l.Description)
		desc.MaxLines = 2
		summary = append(summary, desc)
	}
	if loc := l.Location(); loc != "" {
		row := ps.Row(
			ps.Node{Type: ps.NodeIcon, Icon: "map-pin", Size: "sm", Color: "secondary"},
			ps.Caption(loc),
		)
		row.Gap = 1
		row.Align = "center"
		summary = append(summary, row)
	}

	col := ps.Col(summary...)
	col.Gap = 1
	col.Flex = 1

	actions := ps.Col(favoriteButton(l, favorited), hideButton(l))
	actions.Gap = 1
	actions.Align = "start"

	open := ps.Action{
		Type:    ps.ActionViewItemDetails,
		Handler: "client",
		Payload: map[string]any{
			"item_id":   l.Key(),
			"item_data": l,
		},
	}
	item := ps.ListItem(l.Key(), &open,
		ps.Image(l.DefaultImagePath, l.DisplayTitle(), 120),
		col,
		actions,
	)
	item.Gap = 3
	item.Align = "stretch"
	return item
}

func titleText(title string) ps.Node {
	n := ps.Text(title)
	n.Weight = "semibold"
	n.Size = "sm"
	n.MaxLines = 2
	return n
}

// favoriteButton is icon-only; a filled star marks an already-favorited
// listing. The action round-trips through the server so the overlay updates.
func favoriteButton(l ps.Listing, favorited bool) ps.Node {
	icon, color := "star", "secondary"
	if favorited {
		icon, color = "star-filled", "warning"
	}
	b := ps.Button("", icon, ps.Action{
		Type: ps.ActionToggleFavorite,
		Payload: map[string]any{
			"propertyCode": l.Key(),
			"snapshot":     l,
		},
	})
	b.Size = "xs"
	b.Variant = "ghost"
	b.Color = color
	return b
}

func hideButton(l ps.Listing) ps.Node {
	b := ps.Button("", "eye-slash", ps.Action{
		Type: ps.ActionHideListing,
		Payload: map[string]any{
			"propertyCode": l.Key(),
			"snapshot":     l,
		},
	})
	b.Size = "xs"
	b.Variant = "ghost"
	b.Color = "secondary"
	return b
}
