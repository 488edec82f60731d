// Package vision implements text acquisition against the Google Cloud
// Vision images:annotate REST endpoint.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bilagsky/internal/config"
	"bilagsky/internal/domain"
	"bilagsky/internal/port"
)

const defaultEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// Client implements port.TextAcquirer using Google Cloud Vision
// TEXT_DETECTION.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

var _ port.TextAcquirer = (*Client)(nil)

// NewClient creates a Vision-backed text acquirer.
func NewClient(cfg config.VisionConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg config.VisionConfig, endpoint string) *Client {
	c := NewClient(cfg)
	c.endpoint = endpoint
	return c
}

// annotateResponse models the slice of the images:annotate response we use.
// The first textAnnotation holds the full detected text; the rest are
// per-word boxes we ignore.
type annotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// DetectText sends the image for TEXT_DETECTION and returns the full
// detected text. An image with no detectable text yields
// domain.ErrNoTextDetected.
func (c *Client) DetectText(ctx context.Context, image []byte) (string, error) {
	reqBody := map[string]interface{}{
		"requests": []map[string]interface{}{
			{
				"image": map[string]interface{}{
					"content": base64.StdEncoding.EncodeToString(image),
				},
				"features": []map[string]interface{}{
					{"type": "TEXT_DETECTION"},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.endpoint
	if c.apiKey != "" {
		url += "?key=" + c.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling vision API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed annotateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Responses) == 0 {
		return "", fmt.Errorf("empty response from vision API")
	}

	r := parsed.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision API error (code %d): %s", r.Error.Code, r.Error.Message)
	}
	if len(r.TextAnnotations) == 0 || r.TextAnnotations[0].Description == "" {
		return "", domain.ErrNoTextDetected
	}

	return r.TextAnnotations[0].Description, nil
}
