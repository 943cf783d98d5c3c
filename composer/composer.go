// Package composer drives one conversational turn end to end: open the
// upstream state stream, reduce it to a terminal state, and assemble the
// ordered UIEvent sequence sent downstream. It also hosts the handlers for
// the user-initiated widget actions.
package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/agentapi"
	"github.com/spetersoncode/propstream/component"
	"github.com/spetersoncode/propstream/prefs"
	"github.com/spetersoncode/propstream/reduce"
	"github.com/spetersoncode/propstream/sse"
	"github.com/spetersoncode/propstream/thread"
)

// State names the phase a turn is in. Turns move strictly forward; Errored
// is reachable from any phase after Idle.
type State string

const (
	StateIdle      State = "idle"
	StateStreaming State = "streaming_upstream"
	StateBuffering State = "buffering"
	StateComposing State = "composing"
	StateDone      State = "done"
	StateErrored   State = "errored"
)

const (
	genericFailureText = "I apologize, but I encountered an issue generating a response. Please try again."
	detailFailureText  = "Sorry, I couldn't load the property details. Please try again."

	maxSummaryTitleLen = 80
	maxQueryTitleLen   = 50
)

// Stream is a source of upstream data frames.
type Stream interface {
	Next() (frame []byte, err error)
	Close() error
}

// StreamOpener opens a run stream on the agent service.
type StreamOpener interface {
	OpenStream(ctx context.Context, threadID, userMessage string) (Stream, error)
}

// AgentStreams adapts the agentapi stream client to StreamOpener.
type AgentStreams struct {
	Client *agentapi.StreamClient
}

func (a AgentStreams) OpenStream(ctx context.Context, threadID, userMessage string) (Stream, error) {
	s, err := a.Client.Stream(ctx, threadID, userMessage)
	if err != nil {
		return nil, err
	}
	return agentStream{s}, nil
}

type agentStream struct {
	s *agentapi.Stream
}

func (a agentStream) Next() ([]byte, error) { return a.s.Next() }
func (a agentStream) Close() error          { return a.s.Close() }

// Describer generates listing descriptions.
type Describer interface {
	Generate(ctx context.Context, listing ps.Listing) (string, error)
}

// Turn is the outcome of one conversational turn. A failed turn still
// carries exactly one error text event; Err records the cause for logging
// and is never surfaced raw to the user.
type Turn struct {
	ThreadID string
	Events   []ps.UIEvent
	State    State
	Err      error
}

// Composer assembles turns. It is safe for concurrent use across
// conversations; events within one conversation must be consumed in turn
// order because the title logic depends on the previous title.
type Composer struct {
	agent     StreamOpener
	describer Describer
	threads   *thread.Mapper
	store     *prefs.Store
	cache     *prefs.ContentCache
	registry  *component.Registry
	log       *slog.Logger

	mu     sync.Mutex
	titles map[string]string
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Composer) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDescriber sets the description generator used by the detail view.
// Without one, details render from the data already on the listing.
func WithDescriber(d Describer) Option {
	return func(c *Composer) { c.describer = d }
}

// WithThreadMapper shares an existing identity mapper.
func WithThreadMapper(m *thread.Mapper) Option {
	return func(c *Composer) {
		if m != nil {
			c.threads = m
		}
	}
}

// WithPreferenceStore shares an existing overlay store.
func WithPreferenceStore(s *prefs.Store) Option {
	return func(c *Composer) {
		if s != nil {
			c.store = s
		}
	}
}

// WithContentCache shares an existing description cache.
func WithContentCache(cc *prefs.ContentCache) Option {
	return func(c *Composer) {
		if cc != nil {
			c.cache = cc
		}
	}
}

// WithRegistry replaces the default component registry.
func WithRegistry(r *component.Registry) Option {
	return func(c *Composer) {
		if r != nil {
			c.registry = r
		}
	}
}

// New creates a Composer around the given stream opener.
func New(agent StreamOpener, opts ...Option) *Composer {
	c := &Composer{
		agent:    agent,
		threads:  thread.NewMapper(),
		store:    prefs.NewStore(),
		cache:    prefs.NewContentCache(),
		registry: component.Default(),
		log:      slog.Default(),
		titles:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Respond runs one full turn: resolve the thread, stream state until the
// turn is terminal or the transport closes, then compose the output
// sequence. It never returns a raw error; failures become a Turn in the
// Errored state carrying a single error text event.
func (c *Composer) Respond(ctx context.Context, userID, externalThreadID, userMessage string) Turn {
	stableID := c.threads.Resolve(externalThreadID)

	stream, err := c.agent.OpenStream(ctx, stableID, userMessage)
	if err != nil {
		return c.errored(stableID, StateStreaming, err)
	}
	defer stream.Close()

	reducer := reduce.New()
	for {
		raw, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return c.errored(stableID, StateBuffering, err)
		}
		if sse.IsMetadataFrame(raw) {
			continue
		}

		rec, err := ps.ParseStateRecord(raw)
		if err != nil {
			c.log.Warn("skipping malformed state record", "thread", stableID, "error", err)
			continue
		}
		reducer.Observe(rec)

		// Terminal state reached; remaining frames carry nothing we need.
		if reducer.Terminal(rec) {
			break
		}
	}

	return c.compose(userID, stableID, userMessage, reducer)
}

// compose assembles the output sequence in its fixed order: lead text,
// card widgets, result-count notice, list widgets, then a title update
// when the title changed.
func (c *Composer) compose(userID, stableID, userMessage string, r *reduce.Reducer) Turn {
	last := r.Last()

	text := ""
	if assistant, ok := r.Assistant(); ok {
		text = strings.TrimSpace(assistant.Content)
	}
	hasResults := last.HasResults()

	if text == "" && !hasResults {
		c.log.Info("turn produced no message and no results", "thread", stableID)
		return Turn{
			ThreadID: stableID,
			State:    StateDone,
			Events:   []ps.UIEvent{ps.NewTextEvent(genericFailureText)},
		}
	}

	overlay := c.store.Get(userID, stableID)

	notice := ""
	if hasResults {
		notice = countNotice(last, overlay)
	}

	var events []ps.UIEvent
	if text != "" {
		events = append(events, ps.NewTextEvent(text))
	} else {
		// The count notice doubles as the lead message.
		events = append(events, ps.NewTextEvent(notice))
		notice = ""
	}

	cards, lists := splitByShape(c.registry.Widgets(last, overlay))
	for _, w := range cards {
		events = append(events, ps.NewWidgetEvent(w))
	}
	if notice != "" {
		events = append(events, ps.NewTextEvent(notice))
	}
	for _, w := range lists {
		events = append(events, ps.NewWidgetEvent(w))
	}

	if title := deriveTitle(last, userMessage); title != "" && c.titleChanged(stableID, title) {
		events = append(events, ps.NewTitleEvent(title))
	}

	return Turn{ThreadID: stableID, State: StateDone, Events: events}
}

func (c *Composer) errored(stableID string, at State, err error) Turn {
	c.log.Error("turn failed", "thread", stableID, "state", string(at), "error", err)
	text := fmt.Sprintf("I'm sorry, I encountered an error: %v. Please try again.", err)
	return Turn{
		ThreadID: stableID,
		State:    StateErrored,
		Err:      err,
		Events:   []ps.UIEvent{ps.NewTextEvent(text)},
	}
}

// titleChanged records the title for the conversation and reports whether
// it differs from the previous one.
func (c *Composer) titleChanged(stableID, title string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.titles[stableID] == title {
		return false
	}
	c.titles[stableID] = title
	return true
}

func splitByShape(widgets []ps.Widget) (cards, lists []ps.Widget) {
	for _, w := range widgets {
		if w.Shape == ps.ShapeList {
			lists = append(lists, w)
		} else {
			cards = append(cards, w)
		}
	}
	return cards, lists
}

// countNotice reports how many results the user will see out of the total,
// accounting for hidden items and the list cap.
func countNotice(rec *ps.StateRecord, overlay prefs.Overlay) string {
	total := len(rec.QueryResults)
	visible := 0
	for _, l := range rec.QueryResults {
		if !overlay.IsHidden(l.Key()) {
			visible++
		}
	}
	if visible > component.DefaultMaxItems {
		visible = component.DefaultMaxItems
	}
	return fmt.Sprintf("Showing %d of %d properties", visible, total)
}

// deriveTitle prefers the upstream summary over a prefix of the user's own
// message.
func deriveTitle(rec *ps.StateRecord, userMessage string) string {
	if rec != nil {
		if summary := strings.TrimSpace(rec.TitleSummary); summary != "" {
			return truncateRunes(summary, maxSummaryTitleLen)
		}
	}
	return truncateRunes(strings.TrimSpace(userMessage), maxQueryTitleLen)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
