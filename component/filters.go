package component

import (
	"strconv"
	"strings"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/prefs"
)

// FiltersCard renders the active search criteria as a card of badges. It
// activates whenever the terminal state carries selected filters.
type FiltersCard struct{}

func (c *FiltersCard) Name() string  { return "filters_card" }
func (c *FiltersCard) Priority() int { return 45 }

func (c *FiltersCard) Matches(state *ps.StateRecord, _ prefs.Overlay) bool {
	return state != nil && len(state.SelectedFilters) > 0
}

func (c *FiltersCard) Render(state *ps.StateRecord, _ prefs.Overlay) (*ps.Widget, error) {
	filters := state.SelectedFilters
	if len(filters) == 0 {
		return nil, nil
	}

	badges := make([]ps.Node, 0, len(filters))
	for _, f := range filters {
		label := filterFieldLabel(f.FieldName)
		value := filterValueLabel(f)
		badges = append(badges, ps.Badge(label+": "+value, "secondary"))
	}

	header := ps.Row(
		ps.Title("Filters applied", "sm"),
		ps.Spacer(),
		ps.Badge(strconv.Itoa(len(filters)), "info"),
	)
	header.Align = "center"

	badgeBox := ps.Node{Type: ps.NodeBox, Wrap: "wrap", Gap: 2, Children: badges}

	body := ps.Col(header, badgeBox)
	body.Gap = 3

	root := ps.Node{Type: ps.NodeCard, Size: "sm", Children: []ps.Node{body}}
	return &ps.Widget{
		ID:    ps.GenerateWidgetID(),
		Shape: ps.ShapeCard,
		Root:  root,
	}, nil
}

// filterFieldLabel maps agent field names to display labels. Unknown fields
// get a title-cased fallback.
func filterFieldLabel(fieldName string) string {
	known := map[string]string{
		"price":              "Price",
		"type":               "Type",
		"address.prefecture": "Location",
		"address.city":       "City",
		"propertyArea":       "Size",
		"numberOfRooms":      "Bedrooms",
		"numberOfBathrooms":  "Bathrooms",
		"floor":              "Floor",
		"constructionYear":   "Built",
		"energyClass":        "Energy Class",
		"hasElevator":        "Elevator",
		"hasPool":            "Pool",
		"hasGarden":          "Garden",
		"parkingType":        "Parking",
	}
	if label, ok := known[fieldName]; ok {
		return label
	}
	return titleCase(strings.ReplaceAll(fieldName, "_", " "))
}

// filterValueLabel formats a filter value with its operator: currency and
// area units where the field calls for them, "+" / "≤" for numeric ranges.
func filterValueLabel(f ps.Filter) string {
	switch f.FieldName {
	case "price":
		n, err := strconv.Atoi(f.Value)
		if err != nil {
			return f.Value
		}
		price := ps.Listing{Price: n}.PriceLabel()
		switch f.Operator {
		case "lte":
			return "≤" + price
		case "gte":
			return "≥" + price
		}
		return price

	case "propertyArea":
		if _, err := strconv.Atoi(f.Value); err != nil {
			return f.Value
		}
		switch f.Operator {
		case "lte":
			return "≤" + f.Value + "m²"
		case "gte":
			return "≥" + f.Value + "m²"
		}
		return f.Value + "m²"

	case "numberOfRooms", "numberOfBathrooms", "floor":
		switch f.Operator {
		case "gte":
			return f.Value + "+"
		case "lte":
			return "≤" + f.Value
		}
	}
	return f.Value
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
