package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilagsky/internal/config"
	"bilagsky/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithEndpoint(config.VisionConfig{APIKey: "test-key"}, srv.URL)
}

func TestDetectText_ReturnsFullAnnotation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body struct {
			Requests []struct {
				Image struct {
					Content string `json:"content"`
				} `json:"image"`
				Features []struct {
					Type string `json:"type"`
				} `json:"features"`
			} `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Requests, 1)
		assert.NotEmpty(t, body.Requests[0].Image.Content)
		require.Len(t, body.Requests[0].Features, 1)
		assert.Equal(t, "TEXT_DETECTION", body.Requests[0].Features[0].Type)

		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[
			{"description":"KIWI HATLANE\nSalgskvittering\n"},
			{"description":"KIWI"},
			{"description":"HATLANE"}
		]}]}`))
	})

	text, err := c.DetectText(context.Background(), []byte("fake-jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "KIWI HATLANE\nSalgskvittering\n", text)
}

func TestDetectText_NoAnnotationsIsNoText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{}]}`))
	})

	_, err := c.DetectText(context.Background(), []byte("blank"))
	assert.ErrorIs(t, err, domain.ErrNoTextDetected)
}

func TestDetectText_PerImageError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`))
	})

	_, err := c.DetectText(context.Background(), []byte("corrupt"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoTextDetected)
	assert.Contains(t, err.Error(), "Bad image data")
}

func TestDetectText_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":"PERMISSION_DENIED"}}`, http.StatusForbidden)
	})

	_, err := c.DetectText(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
