// Package component implements the rule-based widget system: independent
// components inspect the terminal agent state and the user's preference
// overlay, and each contributes zero or one widget to the composed response.
package component

import (
	"log/slog"
	"sort"
	"sync"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/prefs"
)

// Component is one rule-based widget producer. Matches decides whether the
// component applies to a terminal state; Render builds the widget. Render
// may return (nil, nil) to contribute nothing even after a match, e.g. when
// the overlay hides every item the component would have shown.
type Component interface {
	Name() string
	Priority() int
	Matches(state *ps.StateRecord, overlay prefs.Overlay) bool
	Render(state *ps.StateRecord, overlay prefs.Overlay) (*ps.Widget, error)
}

// Registry holds registered components in ascending priority order.
// It is safe for concurrent use; registration normally happens once at
// process start.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	log        *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for per-component render failures.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty component registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default creates a registry with the standard property-search components
// registered: the filters card, the listing list, and the save-search button.
func Default(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.Register(
		&FiltersCard{},
		NewListingList(),
		&SaveSearch{},
	)
	return r
}

// Register adds components to the registry and re-sorts by priority.
// Registration order is preserved between components of equal priority.
func (r *Registry) Register(components ...Component) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.components = append(r.components, components...)
	sort.SliceStable(r.components, func(i, j int) bool {
		return r.components[i].Priority() < r.components[j].Priority()
	})
}

// Names returns the registered component names in priority order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components))
	for _, c := range r.components {
		names = append(names, c.Name())
	}
	return names
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

// Widgets evaluates every registered component against the terminal state
// and returns the non-nil render results in priority order. A component
// that panics or returns an error is logged and skipped; one misbehaving
// component never aborts the rest.
func (r *Registry) Widgets(state *ps.StateRecord, overlay prefs.Overlay) []ps.Widget {
	r.mu.RLock()
	components := make([]Component, len(r.components))
	copy(components, r.components)
	r.mu.RUnlock()

	var widgets []ps.Widget
	for _, c := range components {
		w, err := r.renderOne(c, state, overlay)
		if err != nil {
			r.log.Error("component render failed", "component", c.Name(), "error", err)
			continue
		}
		if w != nil {
			widgets = append(widgets, *w)
		}
	}
	return widgets
}

func (r *Registry) renderOne(c Component, state *ps.StateRecord, overlay prefs.Overlay) (w *ps.Widget, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			w = nil
			err = ps.NewPermanentError("component panicked", 0, nil)
			r.log.Error("component panicked", "component", c.Name(), "panic", rec)
		}
	}()

	if !c.Matches(state, overlay) {
		return nil, nil
	}
	return c.Render(state, overlay)
}
