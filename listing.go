package propstream

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Listing is one structured property result from the agent service. It
// doubles as the overlay snapshot stored for favorited or hidden items, so
// rendering never depends on the result still being present upstream.
type Listing struct {
	Code              string          `json:"code,omitempty"`
	ID                string          `json:"id,omitempty"`
	Title             string          `json:"title,omitempty"`
	Price             int             `json:"price,omitempty"`
	PropertyArea      int             `json:"propertyArea,omitempty"`
	NumberOfRooms     int             `json:"numberOfRooms,omitempty"`
	NumberOfBathrooms int             `json:"numberOfBathrooms,omitempty"`
	Floor             *int            `json:"floor,omitempty"`
	Description       string          `json:"description,omitempty"`
	DefaultImagePath  string          `json:"defaultImagePath,omitempty"`
	ConstructionYear  int             `json:"constructionYear,omitempty"`
	RenovationYear    int             `json:"renovationYear,omitempty"`
	EnergyClass       string          `json:"energyClass,omitempty"`
	HeatingType       string          `json:"heatingType,omitempty"`
	NumberOfFloors    int             `json:"numberOfFloors,omitempty"`
	ParkingSpace      int             `json:"parkingSpace,omitempty"`
	OwnershipType     string          `json:"ownershipType,omitempty"`
	Amenities         map[string]bool `json:"amenities,omitempty"`
	Address           *Address        `json:"address,omitempty"`
}

// Address holds the location fields of a listing. GeoPoint is kept raw
// because the two upstream services disagree on its encoding: a GeoJSON
// point object or a "lat,lng" string. See the geo transforms.
type Address struct {
	Prefecture string          `json:"prefecture,omitempty"`
	City       string          `json:"city,omitempty"`
	PostalCode string          `json:"postalCode,omitempty"`
	Country    string          `json:"country,omitempty"`
	GeoPoint   json.RawMessage `json:"geoPoint,omitempty"`
}

// Key returns the stable identifier for the listing: the property code,
// falling back to the raw id.
func (l Listing) Key() string {
	if l.Code != "" {
		return l.Code
	}
	return l.ID
}

// PriceLabel formats the price for display, e.g. "€115,000".
func (l Listing) PriceLabel() string {
	if l.Price <= 0 {
		return "Price on request"
	}
	return "€" + groupThousands(l.Price)
}

// Specs joins the headline attributes, e.g. "224sqm • 4 rooms • 1 bath".
func (l Listing) Specs() string {
	var parts []string
	if l.PropertyArea > 0 {
		parts = append(parts, strconv.Itoa(l.PropertyArea)+"sqm")
	}
	if l.NumberOfRooms > 0 {
		parts = append(parts, strconv.Itoa(l.NumberOfRooms)+" rooms")
	}
	if l.NumberOfBathrooms > 0 {
		parts = append(parts, strconv.Itoa(l.NumberOfBathrooms)+" bath")
	}
	return strings.Join(parts, " • ")
}

// Location returns the display location, currently the prefecture.
func (l Listing) Location() string {
	if l.Address == nil {
		return ""
	}
	return l.Address.Prefecture
}

// DisplayTitle returns the listing title with a generic fallback.
func (l Listing) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return "Property"
}

// groupThousands renders n with comma separators.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
