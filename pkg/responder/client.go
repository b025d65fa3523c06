// Package responder is the HTTP client for the external response-generation
// service (the AI backend the relay forwards messages to).
package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client forwards (user, message) pairs to a fixed endpoint and returns the
// textual reply. The endpoint is set at construction and never changes for
// the lifetime of the service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type request struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

type response struct {
	Reply string `json:"reply"`
}

// NewClient creates a Client for the given endpoint. The timeout bounds the
// whole outbound call; AI responders can be slow, so callers should allow
// minutes rather than seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetAIResponse sends the pair to the responder and returns its reply.
// Any connection failure, non-OK status, or unparseable body is an error;
// there are no retries.
func (c *Client) GetAIResponse(ctx context.Context, user, message string) (string, error) {
	reqBody, err := json.Marshal(request{User: user, Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("responder returned %d: %s", httpResp.StatusCode, string(body))
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return resp.Reply, nil
}
