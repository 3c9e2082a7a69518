// Package shopquery is the thin client for the shop/catalog/order GraphQL
// service. The core only consumes shaped result lists; query text lives here
// and nowhere else.
package shopquery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts GraphQL documents to a single endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// run executes one query and decodes the data payload into out. An HTML
// response (misconfigured endpoint) or GraphQL errors surface as plain
// errors; callers decide what the user sees.
func (c *Client) run(ctx context.Context, query string, variables map[string]any, out any) error {
	raw, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}

	var envelope gqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("shop api returned a non-JSON response (status %d)", resp.StatusCode)
	}
	if len(envelope.Errors) > 0 {
		return errors.New(envelope.Errors[0].Message)
	}
	if envelope.Data == nil {
		return errors.New("shop api returned an empty response")
	}
	return json.Unmarshal(envelope.Data, out)
}
