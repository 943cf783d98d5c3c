// Package agentapi holds the HTTP clients for the two upstream services:
// the agent state-stream API and the synchronous description-generation API.
// Both speak the same threads/runs contract; the stream endpoint answers
// with Server-Sent Events, the wait endpoint with a single JSON body.
package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	ps "github.com/spetersoncode/propstream"
	"github.com/spetersoncode/propstream/sse"
)

// options holds shared client configuration.
type options struct {
	httpClient *http.Client
	log        *slog.Logger
	language   string
	mode       string
}

// Option configures a client in this package.
type Option func(*options)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithLanguage sets the description language. Only the description client
// uses it.
func WithLanguage(language string) Option {
	return func(o *options) {
		if language != "" {
			o.language = language
		}
	}
}

// WithMode sets the description generation mode. Only the description
// client uses it.
func WithMode(mode string) Option {
	return func(o *options) {
		if mode != "" {
			o.mode = mode
		}
	}
}

func defaultOptions() options {
	return options{
		httpClient: http.DefaultClient,
		log:        slog.Default(),
		language:   DefaultLanguage,
		mode:       DefaultMode,
	}
}

// StreamClient streams full-state snapshots from the agent service.
type StreamClient struct {
	baseURL     string
	assistantID string
	opts        options
}

// NewStreamClient creates a client for the agent stream API.
func NewStreamClient(baseURL, assistantID string, opts ...Option) *StreamClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &StreamClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		assistantID: assistantID,
		opts:        o,
	}
}

type streamRequest struct {
	Input       streamInput `json:"input"`
	StreamMode  []string    `json:"stream_mode"`
	AssistantID string      `json:"assistant_id"`
	IfNotExists string      `json:"if_not_exists,omitempty"`
}

type streamInput struct {
	Messages []ps.Message `json:"messages"`
}

// Stream is one open run stream. Close it when the turn ends; early close
// after a terminal frame is the normal path.
type Stream struct {
	parser *sse.Parser
	body   io.ReadCloser
}

// Next returns the next decodable data frame, io.EOF at end of stream, or
// the transport error that broke the stream.
func (s *Stream) Next() (json.RawMessage, error) {
	return s.parser.Next()
}

// Close releases the underlying response body.
func (s *Stream) Close() error {
	return s.body.Close()
}

// Stream opens a run for the user message on the given thread and returns
// the resulting event stream. A connection failure or non-2xx response is a
// transient error; no frames are consumed before returning.
func (c *StreamClient) Stream(ctx context.Context, threadID, userMessage string) (*Stream, error) {
	payload := streamRequest{
		Input: streamInput{
			Messages: []ps.Message{{
				Type:    ps.RoleHuman,
				Content: userMessage,
				ID:      ps.GenerateMessageID(),
			}},
		},
		StreamMode:  []string{"values"},
		AssistantID: c.assistantID,
		IfNotExists: "create",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stream request: %w", err)
	}

	url := fmt.Sprintf("%s/threads/%s/runs/stream", c.baseURL, threadID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create stream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.opts.httpClient.Do(req)
	if err != nil {
		return nil, ps.NewTransientError("agent stream request failed", 0, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, ps.NewTransientError(
			fmt.Sprintf("agent stream returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
			resp.StatusCode, nil)
	}

	return &Stream{
		parser: sse.NewParser(resp.Body, sse.WithLogger(c.opts.log)),
		body:   resp.Body,
	}, nil
}
