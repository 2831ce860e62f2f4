package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the deployed CampusMaster API.
const DefaultBaseURL = "https://campusmaster.onrender.com"

// maxErrorBody caps how much of a failed response is read into HTTPError.
const maxErrorBody = 1 << 20

// TokenSource yields the current bearer token, or "" when anonymous.
// It is consulted on every request; the client never caches the header.
type TokenSource interface {
	GetToken() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

// GetToken implements TokenSource.
func (f TokenFunc) GetToken() string { return f() }

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// GetToken implements TokenSource.
func (s StaticToken) GetToken() string { return string(s) }

// Client is the CampusMaster API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of the
// http.Client, so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a new API client. A nil TokenSource makes every request anonymous.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the API origin the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPut, path, body, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// doRequest sends a JSON request and decodes a JSON response into out.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, method, path, reqBody, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	return decodeBody(resp, out)
}

// FilePart is a file attached to a multipart request.
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// doMultipart sends a multipart/form-data request. The content type carries
// the writer's boundary instead of application/json.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, file FilePart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if file.Content != nil {
		fw, err := mw.CreateFormFile(file.Field, file.FileName)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(fw, file.Content); err != nil {
			return fmt.Errorf("copy file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	resp, err := c.send(ctx, method, path, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	return decodeBody(resp, out)
}

// download streams a binary response body into w.
func (c *Client) download(ctx context.Context, path string, w io.Writer) (int64, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read body: %w", err)
	}
	return n, nil
}

// send builds and executes a request. Non-2xx responses become *HTTPError
// and the response is closed; otherwise the caller owns resp.Body.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.tokens.GetToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("client: %s %s [%s] failed: %v", method, path, reqID, err)
		return nil, fmt.Errorf("do request: %w", err)
	}
	c.logger.Printf("client: %s %s [%s] %d", method, path, reqID, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close() //nolint:errcheck // best-effort close
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return nil, &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}
	return resp, nil
}

// decodeBody decodes a JSON body into out. Empty bodies (204, 205 or zero
// length) leave out untouched. A plain-text body is accepted when out is *string.
func decodeBody(resp *http.Response, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok && !strings.Contains(resp.Header.Get("Content-Type"), "json") {
		*s = string(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}
