package component

import (
	"sort"
	"strconv"
	"strings"

	ps "github.com/spetersoncode/propstream"
)

// DetailCard builds the full-detail card for one listing, shown when the
// user drills into a list item. Unlike the rule-based components this is
// invoked directly from the action path, so it is a plain constructor.
func DetailCard(l ps.Listing) ps.Widget {
	var children []ps.Node

	heading := []ps.Node{titleNode(l.DisplayTitle())}
	if l.Key() != "" {
		heading = append(heading, ps.Caption("Code: "+l.Key()))
	}
	headingCol := ps.Col(heading...)
	headingCol.Flex = 1

	closeBtn := ps.Button("Close", "close", ps.Action{
		Type:    ps.ActionCloseDetails,
		Handler: "client",
	})
	closeBtn.Variant = "ghost"

	header := ps.Row(headingCol, closeBtn)
	header.Justify = "between"
	header.Align = "start"
	children = append(children, header, ps.Divider())

	if l.DefaultImagePath != "" {
		img := ps.Image(l.DefaultImagePath, l.DisplayTitle(), 400)
		img.Fit = "contain"
		children = append(children, img, ps.Spacer())
	}

	children = append(children, priceSpecsRow(l))

	if l.Description != "" {
		children = append(children, ps.Text(l.Description))
	}

	if facts := listingFacts(l); len(facts) > 0 {
		children = append(children, ps.Divider())
		children = append(children, facts...)
	}

	if amenities := amenityBadges(l); len(amenities) > 0 {
		children = append(children, ps.Divider(), titleNode("Amenities"))
		box := ps.Node{Type: ps.NodeBox, Wrap: "wrap", Gap: 2, Children: amenities}
		children = append(children, box)
	}

	if loc := locationLine(l); loc != "" {
		children = append(children, ps.Divider(), ps.Caption(loc))
	}

	body := ps.Col(children...)
	body.Gap = 2

	return ps.Widget{
		ID:    ps.GenerateWidgetID(),
		Shape: ps.ShapeCard,
		Root:  ps.Node{Type: ps.NodeCard, Children: []ps.Node{body}},
	}
}

func titleNode(value string) ps.Node {
	t := ps.Title(value, "xl")
	t.Weight = "bold"
	return t
}

func priceSpecsRow(l ps.Listing) ps.Node {
	price := ps.Badge(l.PriceLabel(), "success")
	price.Size = "md"

	nodes := []ps.Node{price}
	if s := l.Specs(); s != "" {
		nodes = append(nodes, ps.Caption(s))
	}
	if l.Floor != nil {
		nodes = append(nodes, ps.Caption("Floor "+strconv.Itoa(*l.Floor)))
	}

	row := ps.Row(nodes...)
	row.Gap = 2
	row.Align = "center"
	return row
}

// listingFacts returns caption lines for the secondary attributes that are
// present on the listing.
func listingFacts(l ps.Listing) []ps.Node {
	var facts []ps.Node
	add := func(label, value string) {
		facts = append(facts, ps.Caption(label+": "+value))
	}

	if l.ConstructionYear > 0 {
		add("Built", strconv.Itoa(l.ConstructionYear))
	}
	if l.RenovationYear > 0 {
		add("Renovated", strconv.Itoa(l.RenovationYear))
	}
	if l.EnergyClass != "" {
		add("Energy class", l.EnergyClass)
	}
	if l.HeatingType != "" {
		add("Heating", l.HeatingType)
	}
	if l.NumberOfFloors > 0 {
		add("Floors", strconv.Itoa(l.NumberOfFloors))
	}
	if l.ParkingSpace > 0 {
		add("Parking spaces", strconv.Itoa(l.ParkingSpace))
	}
	if l.OwnershipType != "" {
		add("Ownership", l.OwnershipType)
	}
	return facts
}

func amenityBadges(l ps.Listing) []ps.Node {
	names := make([]string, 0, len(l.Amenities))
	for name, has := range l.Amenities {
		if has {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	badges := make([]ps.Node, 0, len(names))
	for _, name := range names {
		badges = append(badges, ps.Badge(name, "secondary"))
	}
	return badges
}

func locationLine(l ps.Listing) string {
	if l.Address == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{l.Address.City, l.Address.Prefecture, l.Address.PostalCode, l.Address.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
