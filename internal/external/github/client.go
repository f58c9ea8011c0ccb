package github

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/tradecare/backend/pkg/httputil"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

// MaxPayloadBytes caps the size of a downloaded CSV payload
const MaxPayloadBytes = 256 << 20

// Client downloads raw files served from GitHub (raw.githubusercontent.com)
// ⭐ SSOT: 원시 데이터셋 다운로드는 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewClient creates a new GitHub raw content client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "github"),
	}
}

// FetchCSV downloads the document at url and returns its bytes.
// A non-2xx status or an HTML page in place of CSV is an error.
func (c *Client) FetchCSV(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxPayloadBytes {
		return nil, fmt.Errorf("payload exceeds %d bytes", MaxPayloadBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d%s", resp.StatusCode, describeBody(resp, body))
	}

	if isHTML(resp, body) {
		return nil, fmt.Errorf("expected CSV but received an HTML page%s", describeBody(resp, body))
	}

	c.logger.WithFields(map[string]interface{}{
		"url":   url,
		"bytes": len(body),
	}).Debug("Dataset downloaded")

	return body, nil
}

// isHTML reports whether the response is an HTML document
func isHTML(resp *http.Response, body []byte) bool {
	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "text/html") {
		return true
	}

	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// describeBody returns a short suffix for error messages: the page title of an
// HTML body, or the first line of a text body
func describeBody(resp *http.Response, body []byte) string {
	if len(body) == 0 {
		return ""
	}

	if isHTML(resp, body) {
		if title := pageTitle(body); title != "" {
			return fmt.Sprintf(" (%s)", title)
		}
		return ""
	}

	line := string(body)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if len(line) > 120 {
		line = line[:120]
	}
	if line == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", line)
}

// pageTitle extracts <title> from an HTML document
func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
