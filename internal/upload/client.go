package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/piste/internal/draft"
)

// Client sends template drafts to the Piste server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the Piste server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendTemplate POSTs a draft to the server's templates endpoint. Retries up
// to 3 times with exponential backoff on transport failures; rejections
// (incomplete drafts, bad keys) are returned immediately.
func (c *Client) SendTemplate(d draft.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling draft: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/templates", bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusCreated:
			return nil
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error (status %d): %s", resp.StatusCode, body)
			continue
		default:
			return fmt.Errorf("template rejected (status %d): %s", resp.StatusCode, body)
		}
	}
	return fmt.Errorf("sending template after 3 attempts: %w", lastErr)
}
