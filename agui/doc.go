// Package agui converts composed UIEvents to the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based protocol
// that standardizes how AI agents connect to user-facing applications. This
// package maps the turn output of the composer onto AG-UI events so any
// AG-UI-compatible frontend can render it.
//
// # Event Mapping
//
//   - text message    → TEXT_MESSAGE_START, TEXT_MESSAGE_CONTENT, TEXT_MESSAGE_END
//   - widget          → CUSTOM ("widget")
//   - thread metadata → CUSTOM ("thread_metadata")
//
// A whole turn is framed by RUN_STARTED and RUN_FINISHED, or RUN_ERROR when
// the turn failed.
//
// The package does NOT provide HTTP handlers or transport implementations;
// the server layer writes the mapped events over SSE itself.
//
// # Thread Safety
//
// The Mapper is NOT safe for concurrent use. Create one per run.
package agui
