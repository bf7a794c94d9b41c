// Package client talks to POST /api/join the way the landing page form does:
// it only distinguishes an acknowledged submission from any failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"alloc8-join/models"
)

// ErrSubmissionFailed covers every non-acknowledged outcome. The server's
// error message is deliberately not surfaced.
var ErrSubmissionFailed = errors.New("submission failed")

type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New returns a client for the site at baseURL, e.g. https://alloc-8.co.uk.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 45 * time.Second}
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/join",
		httpClient: httpClient,
	}
}

// wire body: always the four canonical fields
type joinRequest struct {
	EmailAddress           string `json:"emailAddress"`
	FeaturesMatterMost     string `json:"featuresMatterMost"`
	CurrentPlacementSystem string `json:"currentPlacementSystem"`
	MainChallenges         string `json:"mainChallenges"`
}

// Join posts the submission and returns the provider message id, if any.
func (c *Client) Join(ctx context.Context, s models.Submission) (string, error) {
	body, err := json.Marshal(joinRequest{
		EmailAddress:           s.EmailAddress,
		FeaturesMatterMost:     s.FeaturesMatterMost,
		CurrentPlacementSystem: s.CurrentPlacementSystem,
		MainChallenges:         s.MainChallenges,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	var out models.JoinResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: status %d", ErrSubmissionFailed, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !out.OK {
		return "", fmt.Errorf("%w: status %d", ErrSubmissionFailed, resp.StatusCode)
	}

	return out.ID, nil
}
