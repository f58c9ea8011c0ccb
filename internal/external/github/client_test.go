package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradecare/backend/pkg/config"
	"github.com/wonny/tradecare/backend/pkg/httputil"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

func newTestClient() *Client {
	cfg := &config.Config{Dataset: config.DatasetConfig{FetchTimeout: 5 * time.Second}}
	return NewClient(httputil.New(cfg, logger.Nop()), logger.Nop())
}

func TestClient_FetchCSV(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantErr     string
	}{
		{
			name:        "csv payload",
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			body:        "TIME_UNIX,DATE_STR\n1,2020-01-01\n",
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			contentType: "text/plain; charset=utf-8",
			body:        "404: Not Found",
			wantErr:     "unexpected status code: 404 (404: Not Found)",
		},
		{
			name:        "html error page",
			status:      http.StatusOK,
			contentType: "text/html",
			body:        "<html><head><title>Rate limit exceeded</title></head><body></body></html>",
			wantErr:     "received an HTML page (Rate limit exceeded)",
		},
		{
			name:        "html sniffed without content type",
			status:      http.StatusOK,
			contentType: "application/octet-stream",
			body:        "  <!DOCTYPE html><html><title>Sign in</title></html>",
			wantErr:     "(Sign in)",
		},
		{
			name:        "server error with html",
			status:      http.StatusServiceUnavailable,
			contentType: "text/html",
			body:        "<html><title>Unicorn!</title></html>",
			wantErr:     "unexpected status code: 503 (Unicorn!)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			body, err := newTestClient().FetchCSV(context.Background(), server.URL)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestClient_FetchCSV_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient().FetchCSV(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request failed")
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Hello", pageTitle([]byte("<html><head><title> Hello </title></head></html>")))
	assert.Equal(t, "", pageTitle([]byte("<html><body>no title</body></html>")))
}
