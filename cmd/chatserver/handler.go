package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/agui"
	"github.com/spetersoncode/propstream/composer"
)

// ChatHandler runs one conversational turn per request and streams the
// resulting AG-UI events over SSE.
type ChatHandler struct {
	composer *composer.Composer
}

// NewChatHandler creates a handler around the composer.
func NewChatHandler(c *composer.Composer) *ChatHandler {
	return &ChatHandler{composer: c}
}

type chatRequest struct {
	UserID   string `json:"user_id"`
	ThreadID string `json:"thread_id"`
	Message  string `json:"message"`
}

// ServeHTTP handles POST requests carrying one user message.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		slog.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid request body", "error", err)
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = "anon"
	}
	if req.ThreadID == "" {
		req.ThreadID = aguievents.GenerateThreadID()
	}

	log := slog.With("user_id", req.UserID, "thread_id", req.ThreadID)
	log.Info("turn started")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	turn := h.composer.Respond(r.Context(), req.UserID, req.ThreadID, req.Message)

	mapper := agui.NewMapper(req.ThreadID, "")
	var eventCount int
	for _, ev := range mapper.MapTurn(turn) {
		if err := writeSSE(w, flusher, ev); err != nil {
			log.Error("failed to write SSE event", "error", err, "event_type", ev.Type())
			return
		}
		eventCount++
	}

	log.Info("turn completed",
		"state", string(turn.State),
		"duration_ms", time.Since(start).Milliseconds(),
		"events_sent", eventCount,
	)
}

// ActionHandler applies widget action callbacks: favorite toggles, hide and
// unhide, and the detail-view drilldown.
type ActionHandler struct {
	composer *composer.Composer
}

// NewActionHandler creates a handler around the composer.
func NewActionHandler(c *composer.Composer) *ActionHandler {
	return &ActionHandler{composer: c}
}

type actionRequest struct {
	UserID   string        `json:"user_id"`
	ThreadID string        `json:"thread_id"`
	Type     string        `json:"type"`
	Payload  actionPayload `json:"payload"`
}

type actionPayload struct {
	PropertyCode string     `json:"propertyCode"`
	Snapshot     ps.Listing `json:"snapshot"`
	ItemData     ps.Listing `json:"item_data"`
}

// ServeHTTP handles POST requests carrying one widget action.
func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid action body", "error", err)
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = "anon"
	}

	log := slog.With("user_id", req.UserID, "thread_id", req.ThreadID, "action", req.Type)

	switch req.Type {
	case ps.ActionToggleFavorite:
		favorited := h.composer.ToggleFavorite(req.UserID, req.ThreadID, req.Payload.PropertyCode, req.Payload.Snapshot)
		log.Info("favorite toggled", "code", req.Payload.PropertyCode, "favorited", favorited)
		writeJSON(w, map[string]any{"favorited": favorited})

	case ps.ActionHideListing:
		h.composer.HideListing(req.UserID, req.ThreadID, req.Payload.PropertyCode, req.Payload.Snapshot)
		log.Info("listing hidden", "code", req.Payload.PropertyCode)
		writeJSON(w, map[string]any{"hidden": true})

	case ps.ActionUnhideListing:
		h.composer.UnhideListing(req.UserID, req.ThreadID, req.Payload.PropertyCode)
		log.Info("listing unhidden", "code", req.Payload.PropertyCode)
		writeJSON(w, map[string]any{"hidden": false})

	case ps.ActionViewItemDetails:
		h.streamDetails(w, r, req, log)

	default:
		log.Warn("unknown action type")
		http.Error(w, "Unknown action type: "+req.Type, http.StatusBadRequest)
	}
}

// streamDetails emits the detail view (or its failure text) as SSE so the
// client consumes it the same way as a turn.
func (h *ActionHandler) streamDetails(w http.ResponseWriter, r *http.Request, req actionRequest, log *slog.Logger) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	mapper := agui.NewMapper(req.ThreadID, "")
	for _, uiEvent := range h.composer.ViewItemDetails(r.Context(), req.Payload.ItemData) {
		for _, ev := range mapper.MapEvent(uiEvent) {
			if err := writeSSE(w, flusher, ev); err != nil {
				log.Error("failed to write SSE event", "error", err)
				return
			}
		}
	}
	log.Info("details streamed", "code", req.Payload.ItemData.Key())
}

// writeSSE writes an AG-UI event in SSE format.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev aguievents.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	// Write SSE format: event: TYPE\ndata: {json}\n\n
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type(), string(data)); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	flusher.Flush()
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// corsMiddleware adds CORS headers for cross-origin frontend requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
