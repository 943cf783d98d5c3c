// Package propstream translates agent state streams into chat-UI thread events.
//
// The upstream agent service emits full-state snapshots over Server-Sent
// Events; the downstream chat UI consumes discrete, ordered thread events
// (text messages, widgets, thread metadata updates). This package holds the
// shared types: conversation messages, agent state records, listing payloads,
// the widget tree, the UIEvent union, and categorized errors.
//
// The translation pipeline lives in the subpackages:
//
//   - sse: frame parsing for the upstream event stream
//   - reduce: state reduction and terminal detection
//   - thread: external-to-stable conversation id mapping
//   - prefs: per-user/conversation preference overlays and the
//     process-wide description cache
//   - component: the rule-based widget registry
//   - agentapi: HTTP clients for the agent and description services
//   - composer: the per-turn orchestration state machine
//   - agui: adapter to the AG-UI protocol for transport layers
package propstream
