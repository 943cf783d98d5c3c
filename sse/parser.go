// Package sse parses Server-Sent-Event streams from the agent service into
// discrete JSON data frames. The parser is forward-only and not restartable;
// create a new Parser per stream.
package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
)

const (
	dataPrefix  = "data: "
	eventPrefix = "event: "

	// maxFrameSize bounds a single SSE line; state snapshots with large
	// result lists can run long.
	maxFrameSize = 4 << 20
)

// Parser turns a raw line stream into a sequence of JSON frames.
//
// Blank lines and ":" comment lines are ignored. "event:" lines carry no
// state and are logged at debug level. "data:" lines are JSON-decoded; a
// decode failure on one line is logged and skipped, never fatal.
type Parser struct {
	scanner *bufio.Scanner
	log     *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for skipped lines.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// NewParser creates a Parser reading SSE lines from r.
func NewParser(r io.Reader, opts ...Option) *Parser {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxFrameSize)

	p := &Parser{
		scanner: scanner,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next returns the next decodable data frame. It returns io.EOF when the
// stream ends, or the underlying read error if the transport fails.
func (p *Parser) Next() (json.RawMessage, error) {
	for p.scanner.Scan() {
		line := p.scanner.Text()

		// Blank lines separate events; comment lines are keep-alives.
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, eventPrefix) {
			p.log.Debug("stream event type", "event", strings.TrimPrefix(line, eventPrefix))
			continue
		}

		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		data := strings.TrimPrefix(line, dataPrefix)
		if !json.Valid([]byte(data)) {
			p.log.Warn("skipping undecodable stream frame", "data", truncate(data, 200))
			continue
		}
		return json.RawMessage(data), nil
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// IsMetadataFrame reports whether a frame is a run-metadata frame: exactly
// two keys, a run id and an attempt counter. Metadata frames carry no
// conversation state and must not reach the reducer.
func IsMetadataFrame(raw json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	if len(fields) != 2 {
		return false
	}
	_, hasRun := fields["run_id"]
	_, hasAttempt := fields["attempt"]
	return hasRun && hasAttempt
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
