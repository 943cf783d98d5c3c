package composer

import (
	"context"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/component"
	"github.com/spetersoncode/propstream/prefs"
)

// ToggleFavorite flips the favorite state of a listing for the user and
// conversation, and returns the new state.
func (c *Composer) ToggleFavorite(userID, externalThreadID, code string, snapshot ps.Listing) bool {
	stableID := c.threads.Resolve(externalThreadID)
	if c.store.Get(userID, stableID).IsFavorite(code) {
		c.store.RemoveFavorite(userID, stableID, code)
		return false
	}
	c.store.AddFavorite(userID, stableID, code, snapshot)
	return true
}

// HideListing hides a listing from future result lists in this conversation.
func (c *Composer) HideListing(userID, externalThreadID, code string, snapshot ps.Listing) {
	stableID := c.threads.Resolve(externalThreadID)
	c.store.Hide(userID, stableID, code, snapshot)
}

// UnhideListing reverses HideListing.
func (c *Composer) UnhideListing(userID, externalThreadID, code string) {
	stableID := c.threads.Resolve(externalThreadID)
	c.store.Unhide(userID, stableID, code)
}

// Overlay returns the current preference overlay for the user and
// conversation.
func (c *Composer) Overlay(userID, externalThreadID string) prefs.Overlay {
	stableID := c.threads.Resolve(externalThreadID)
	return c.store.Get(userID, stableID)
}

// DescribeListing returns the description text for a listing, generating it
// through the description service on first request. The second return value
// reports a cache hit. Generation happens outside the cache lock; a rare
// duplicate generation under contention is acceptable, regeneration on a
// hit is not.
func (c *Composer) DescribeListing(ctx context.Context, listing ps.Listing) (string, bool, error) {
	key := listing.Key()
	if text, ok := c.cache.Get(key); ok {
		return text, true, nil
	}
	if c.describer == nil {
		return "", false, nil
	}

	text, err := c.describer.Generate(ctx, listing)
	if err != nil {
		return "", false, err
	}
	c.cache.Put(key, text)
	return text, false, nil
}

// ViewItemDetails builds the detail view for a listing. A listing without
// its own description gets one generated; a generation failure degrades to
// a single apology text event instead of a broken card.
func (c *Composer) ViewItemDetails(ctx context.Context, listing ps.Listing) []ps.UIEvent {
	if listing.Description == "" && c.describer != nil {
		text, cached, err := c.DescribeListing(ctx, listing)
		if err != nil {
			c.log.Error("description generation failed", "listing", listing.Key(), "error", err)
			return []ps.UIEvent{ps.NewTextEvent(detailFailureText)}
		}
		c.log.Debug("detail description ready", "listing", listing.Key(), "cached", cached)
		listing.Description = text
	}

	return []ps.UIEvent{ps.NewWidgetEvent(component.DetailCard(listing))}
}
