package agentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ps "github.com/spetersoncode/propstream"
)

func TestStreamClient_Stream(t *testing.T) {
	var gotPath string
	var gotBody streamRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: metadata\n")
		fmt.Fprint(w, "data: {\"run_id\":\"r1\",\"attempt\":1}\n\n")
		fmt.Fprint(w, "data: {\"messages\":[{\"type\":\"human\",\"content\":\"hi\"}]}\n\n")
	}))
	defer srv.Close()

	c := NewStreamClient(srv.URL, "agent")
	stream, err := c.Stream(context.Background(), "thread-1", "hi")
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, "/threads/thread-1/runs/stream", gotPath)
	assert.Equal(t, []string{"values"}, gotBody.StreamMode)
	assert.Equal(t, "agent", gotBody.AssistantID)
	assert.Equal(t, "create", gotBody.IfNotExists)
	require.Len(t, gotBody.Input.Messages, 1)
	assert.Equal(t, ps.RoleHuman, gotBody.Input.Messages[0].Type)
	assert.Equal(t, "hi", gotBody.Input.Messages[0].Content)
	assert.NotEmpty(t, gotBody.Input.Messages[0].ID)

	frame, err := stream.Next()
	require.NoError(t, err)
	assert.JSONEq(t, `{"run_id":"r1","attempt":1}`, string(frame))

	frame, err = stream.Next()
	require.NoError(t, err)
	assert.Contains(t, string(frame), "messages")

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamClient_Non2xxIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewStreamClient(srv.URL, "agent")
	stream, err := c.Stream(context.Background(), "thread-1", "hi")
	require.Error(t, err)
	assert.Nil(t, stream)
	assert.True(t, ps.IsTransient(err))
	assert.Equal(t, http.StatusInternalServerError, ps.StatusCodeOf(err))
	assert.Contains(t, err.Error(), "500")
}

func TestStreamClient_ConnectionErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewStreamClient(srv.URL, "agent")
	_, err := c.Stream(context.Background(), "thread-1", "hi")
	require.Error(t, err)
	assert.True(t, ps.IsTransient(err))
	assert.Equal(t, 0, ps.StatusCodeOf(err))
}

func TestDescriptionClient_Generate(t *testing.T) {
	var gotPath string
	var gotBody descriptionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"final_description":"A lovely maisonette by the sea."}`)
	}))
	defer srv.Close()

	c := NewDescriptionClient(srv.URL, "agent")
	listing := ps.Listing{
		Code: "P1",
		Address: &ps.Address{
			Prefecture: "Chalkidiki",
			GeoPoint:   json.RawMessage(`{"type":"Point","coordinates":[23.5,40.1]}`),
		},
	}

	text, err := c.Generate(context.Background(), listing)
	require.NoError(t, err)
	assert.Equal(t, "A lovely maisonette by the sea.", text)

	assert.True(t, strings.HasPrefix(gotPath, "/threads/"))
	assert.True(t, strings.HasSuffix(gotPath, "/runs/wait"))
	assert.Equal(t, "agent", gotBody.AssistantID)
	assert.Equal(t, "create", gotBody.IfNotExists)
	assert.Equal(t, DefaultLanguage, gotBody.Input.DescriptionLanguage)
	assert.Equal(t, DefaultMode, gotBody.Input.Mode)

	// Geo point arrives as "lat,lng".
	require.NotNil(t, gotBody.Input.HouseData.Address)
	assert.Equal(t, `"40.1,23.5"`, string(gotBody.Input.HouseData.Address.GeoPoint))
}

func TestDescriptionClient_FallsBackToFinalResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"final_response":"fallback text"}`)
	}))
	defer srv.Close()

	c := NewDescriptionClient(srv.URL, "agent")
	text, err := c.Generate(context.Background(), ps.Listing{Code: "P1"})
	require.NoError(t, err)
	assert.Equal(t, "fallback text", text)
}

func TestDescriptionClient_MissingDescriptionIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"something_else":true}`)
	}))
	defer srv.Close()

	c := NewDescriptionClient(srv.URL, "agent")
	_, err := c.Generate(context.Background(), ps.Listing{Code: "P1"})
	require.Error(t, err)

	var ce ps.CategorizedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ps.ErrorPermanent, ce.Category())
}

func TestDescriptionClient_MalformedGeoPointSentAsIs(t *testing.T) {
	var gotBody descriptionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"final_description":"ok"}`)
	}))
	defer srv.Close()

	c := NewDescriptionClient(srv.URL, "agent")
	listing := ps.Listing{
		Code:    "P1",
		Address: &ps.Address{GeoPoint: json.RawMessage(`{"coordinates":[1]}`)},
	}

	_, err := c.Generate(context.Background(), listing)
	require.NoError(t, err)
	assert.Equal(t, `{"coordinates":[1]}`, string(gotBody.Input.HouseData.Address.GeoPoint))
}

func TestDescriptionClient_Non2xxIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewDescriptionClient(srv.URL, "agent")
	_, err := c.Generate(context.Background(), ps.Listing{Code: "P1"})
	require.Error(t, err)
	assert.True(t, ps.IsTransient(err))
	assert.Equal(t, http.StatusBadGateway, ps.StatusCodeOf(err))
}
