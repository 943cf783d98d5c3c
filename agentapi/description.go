package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	ps "github.com/spetersoncode/propstream"
)

// Defaults for description generation.
const (
	DefaultLanguage = "english"
	DefaultMode     = "auto"
)

// DescriptionClient generates listing descriptions through the synchronous
// runs/wait endpoint of the description service.
type DescriptionClient struct {
	baseURL     string
	assistantID string
	opts        options
}

// NewDescriptionClient creates a client for the description API.
func NewDescriptionClient(baseURL, assistantID string, opts ...Option) *DescriptionClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &DescriptionClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		assistantID: assistantID,
		opts:        o,
	}
}

type descriptionRequest struct {
	AssistantID string           `json:"assistant_id"`
	Input       descriptionInput `json:"input"`
	IfNotExists string           `json:"if_not_exists"`
}

type descriptionInput struct {
	HouseData           ps.Listing `json:"house_data"`
	DescriptionLanguage string     `json:"description_language"`
	Mode                string     `json:"mode"`
}

type descriptionResponse struct {
	FinalDescription string `json:"final_description"`
	FinalResponse    string `json:"final_response"`
}

// Generate produces a description for the listing. The geo point is
// converted to the "lat,lng" string form the description service expects;
// a malformed point is logged and sent untransformed. A response missing
// both description fields is a permanent error.
func (c *DescriptionClient) Generate(ctx context.Context, listing ps.Listing) (string, error) {
	payload := descriptionRequest{
		AssistantID: c.assistantID,
		Input: descriptionInput{
			HouseData:           c.houseData(listing),
			DescriptionLanguage: c.opts.language,
			Mode:                c.opts.mode,
		},
		IfNotExists: "create",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal description request: %w", err)
	}

	// Each generation runs on a throwaway thread.
	url := fmt.Sprintf("%s/threads/%s/runs/wait", c.baseURL, uuid.NewString())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create description request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.opts.httpClient.Do(req)
	if err != nil {
		return "", ps.NewTransientError("description request failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", ps.NewTransientError(
			fmt.Sprintf("description service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
			resp.StatusCode, nil)
	}

	var out descriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ps.NewMalformedError("undecodable description response", err)
	}

	description := out.FinalDescription
	if description == "" {
		description = out.FinalResponse
	}
	if description == "" {
		return "", ps.NewPermanentError("description response missing final_description or final_response", 0, nil)
	}

	c.opts.log.Debug("generated description", "listing", listing.Key(), "chars", len(description))
	return description, nil
}

// houseData rewrites the listing's geo point into the "lat,lng" string form.
// The listing's address is copied, never mutated in place.
func (c *DescriptionClient) houseData(l ps.Listing) ps.Listing {
	if l.Address == nil || len(l.Address.GeoPoint) == 0 {
		return l
	}

	latlng, err := ps.GeoPointToLatLng(l.Address.GeoPoint)
	if err != nil {
		c.opts.log.Warn("leaving geo point untransformed", "listing", l.Key(), "error", err)
		return l
	}

	encoded, err := json.Marshal(latlng)
	if err != nil {
		return l
	}

	addr := *l.Address
	addr.GeoPoint = encoded
	l.Address = &addr
	return l
}
