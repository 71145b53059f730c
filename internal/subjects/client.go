package subjects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single call to the peer service.
const DefaultTimeout = 5 * time.Second

// maxErrorBody caps how much of a failed response is kept for the error.
const maxErrorBody = 512

// Client calls GET {baseURL}/subjects on the peer subjects service,
// which answers with a JSON array of subject names.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client. A non-positive timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetAllSubjects fetches the full subject list. Any transport error,
// non-2xx status or undecodable body is returned as an error; there are
// no retries.
func (c *Client) GetAllSubjects(ctx context.Context) ([]string, error) {
	url := c.baseURL + "/subjects"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("GetAllSubjects: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GetAllSubjects: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("GetAllSubjects: GET %s: status %d: %s",
			url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// Decoding into a pointer tells a top-level null apart from [].
	var names *[]string
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&names); err != nil {
		return nil, fmt.Errorf("GetAllSubjects: decode response: %w", err)
	}
	if names == nil {
		return nil, errors.New("GetAllSubjects: decode response: body is null, want a JSON array")
	}
	if dec.More() {
		return nil, errors.New("GetAllSubjects: decode response: unexpected data after JSON array")
	}
	if *names == nil {
		return []string{}, nil
	}

	return *names, nil
}
