package sse

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectFrames(t *testing.T, input string) []json.RawMessage {
	t.Helper()
	p := NewParser(strings.NewReader(input))

	var frames []json.RawMessage
	for {
		frame, err := p.Next()
		if err == io.EOF {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, frame)
	}
}

func TestParser_DataFrames(t *testing.T) {
	input := strings.Join([]string{
		`event: metadata`,
		`data: {"run_id":"r1","attempt":1}`,
		``,
		`: keep-alive comment`,
		`event: values`,
		`data: {"messages":[]}`,
		``,
		`data: {"messages":[{"type":"ai","content":"hi"}]}`,
		``,
	}, "\n")

	frames := collectFrames(t, input)
	require.Len(t, frames, 3)
	assert.JSONEq(t, `{"run_id":"r1","attempt":1}`, string(frames[0]))
	assert.JSONEq(t, `{"messages":[]}`, string(frames[1]))
}

func TestParser_SkipsUndecodableLines(t *testing.T) {
	input := strings.Join([]string{
		`data: {broken json`,
		`data: {"ok":true}`,
		`data: also not json`,
		`data: {"ok":false}`,
	}, "\n")

	frames := collectFrames(t, input)
	require.Len(t, frames, 2)
	assert.JSONEq(t, `{"ok":true}`, string(frames[0]))
	assert.JSONEq(t, `{"ok":false}`, string(frames[1]))
}

func TestParser_EmptyStream(t *testing.T) {
	p := NewParser(strings.NewReader(""))
	_, err := p.Next()
	assert.Equal(t, io.EOF, err)
}

func TestIsMetadataFrame(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"metadata frame", `{"run_id":"r1","attempt":1}`, true},
		{"extra keys", `{"run_id":"r1","attempt":1,"messages":[]}`, false},
		{"missing attempt", `{"run_id":"r1","other":2}`, false},
		{"state frame", `{"messages":[]}`, false},
		{"not an object", `[1,2]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMetadataFrame(json.RawMessage(tt.raw)))
		})
	}
}
