package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 2048
)

// APIError is a non-2xx answer from an HTTP mail API.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API returned %d: %s", e.Provider, e.StatusCode, e.Body)
}

// jsonAPI posts JSON payloads to a bearer-authenticated mail API.
type jsonAPI struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
}

func newJSONAPI(name, baseURL, apiKey string, client *http.Client) jsonAPI {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return jsonAPI{name: name, baseURL: baseURL, apiKey: apiKey, client: client}
}

// post sends payload to path and returns the response headers and body on
// a 2xx status.
func (a jsonAPI) post(ctx context.Context, path string, payload any) (http.Header, []byte, error) {
	if a.apiKey == "" {
		return nil, nil, ErrAPIKeyRequired
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to encode payload: %w", a.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to build request: %w", a.name, err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: request failed: %w", a.name, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, &APIError{Provider: a.name, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return resp.Header, respBody, nil
}
