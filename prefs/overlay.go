// Package prefs keeps the per-conversation preference overlay (favorited
// and hidden listings) and the process-wide generated-description cache.
package prefs

import (
	ps "github.com/spetersoncode/propstream"
)

// SchemaVersion is stamped on every overlay so a future persistence layer
// can migrate stored shapes.
const SchemaVersion = 1

// Overlay is the favorite/hidden bookkeeping for one (user, conversation)
// pair. Full listing snapshots are stored so overlay-driven rendering never
// depends on the listing still being present in upstream results.
//
// A code may appear in both Favorites and Hidden at once; rendering decides
// precedence, and hidden wins.
type Overlay struct {
	Version   int                   `json:"version"`
	Favorites map[string]ps.Listing `json:"favorites"`
	Hidden    map[string]ps.Listing `json:"hidden"`
}

// NewOverlay creates an empty overlay.
func NewOverlay() Overlay {
	return Overlay{
		Version:   SchemaVersion,
		Favorites: make(map[string]ps.Listing),
		Hidden:    make(map[string]ps.Listing),
	}
}

// IsFavorite reports whether a listing code is favorited.
func (o Overlay) IsFavorite(code string) bool {
	_, ok := o.Favorites[code]
	return ok
}

// IsHidden reports whether a listing code is hidden.
func (o Overlay) IsHidden(code string) bool {
	_, ok := o.Hidden[code]
	return ok
}

// Empty reports whether the overlay holds no preferences.
func (o Overlay) Empty() bool {
	return len(o.Favorites) == 0 && len(o.Hidden) == 0
}

func (o Overlay) clone() Overlay {
	c := NewOverlay()
	c.Version = o.Version
	for k, v := range o.Favorites {
		c.Favorites[k] = v
	}
	for k, v := range o.Hidden {
		c.Hidden[k] = v
	}
	return c
}
