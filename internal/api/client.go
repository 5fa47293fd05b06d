// Package api implements the HTTP layer of the Universe client: a declarative
// request descriptor, its execution against the service, and classification of
// failures into RFC 7807 problems, unexpected HTTP errors, and transport
// errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/universeproject/client-go/internal/logging"
)

// DefaultTimeout is the fixed per-request timeout applied when the caller
// does not configure one.
const DefaultTimeout = 20 * time.Second

// TokenSource supplies the bearer credential to attach to outgoing requests.
// An empty string means no credential is held and no header is attached.
type TokenSource interface {
	Token() string
}

// Request describes a single HTTP exchange to perform.
type Request struct {
	// URL is an RFC 6570 template relative to the client's base URL.
	URL string
	// URLParams supplies values for the template's placeholders.
	URLParams map[string]string
	// Method is the HTTP method; GET when empty.
	Method string
	// Headers are extra request headers.
	Headers map[string]string
	// Body, when non-nil, is JSON-encoded into the request body.
	Body any
	// ForceReload asks intermediaries for a fresh response.
	ForceReload bool
}

// Response is the decoded result of a successful exchange.
type Response struct {
	Status  int
	Headers http.Header
	// Data is the generically decoded body: parsed JSON for JSON media
	// types, the raw text otherwise.
	Data any

	raw []byte
}

// Decode unmarshals the response body into v. Only valid for JSON bodies.
func (r *Response) Decode(v any) error {
	if len(r.raw) == 0 {
		return errors.New("response has no body")
	}
	return json.Unmarshal(r.raw, v)
}

// Client executes Requests against the service. It owns no retry or caching
// behavior; its only side effect is the outbound call.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewClient constructs a Client for the service at baseURL. A zero timeout
// selects DefaultTimeout. tokens may be nil for an unauthenticated client.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

// Execute performs the described exchange and classifies the outcome.
//
// Returned errors:
//   - *ProblemResponse for a non-2xx reply with an application/problem+json body
//   - *UnexpectedHTTPError for any other non-2xx reply
//   - *TransportError when the exchange could not be completed (timeout,
//     connection failure)
//   - ErrMissingURLParam when the template cannot be expanded
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	expanded, err := expandURL(req.URL, req.URLParams)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+expanded, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.ForceReload {
		httpReq.Header.Set("Cache-Control", "no-cache")
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug(ctx, "making request", "method", method, "url", expanded, "request_id", requestID)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error(ctx, "request failed", "url", expanded, "request_id", requestID, "error", err)
		return nil, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp := &Response{Status: httpResp.StatusCode, Headers: httpResp.Header, raw: raw}

	mediaType := responseMediaType(httpResp.Header)
	if isJSONMediaType(mediaType) {
		if len(raw) > 0 {
			var data any
			if err := json.Unmarshal(raw, &data); err != nil {
				return nil, fmt.Errorf("decoding response body: %w", err)
			}
			resp.Data = data
		}
	} else {
		resp.Data = string(raw)
	}

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		return resp, nil
	}

	if mediaType == ProblemMediaType {
		var problem Problem
		if err := json.Unmarshal(raw, &problem); err != nil {
			return nil, fmt.Errorf("decoding problem body: %w", err)
		}
		c.log.Debug(ctx, "received problem response",
			"type", problem.Type, "status", httpResp.StatusCode, "request_id", requestID)
		return nil, &ProblemResponse{Problem: problem, Status: httpResp.StatusCode, Headers: httpResp.Header}
	}

	c.log.Error(ctx, "unexpected HTTP response",
		"status", httpResp.StatusCode, "url", expanded, "request_id", requestID)
	return nil, &UnexpectedHTTPError{Status: httpResp.StatusCode, Data: resp.Data, Headers: httpResp.Header}
}

// responseMediaType returns the bare media type of the response, with any
// parameters (charset etc.) stripped.
func responseMediaType(headers http.Header) string {
	ct := headers.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mediaType
}

// isJSONMediaType reports whether the body should be parsed as JSON. This
// covers application/json and any +json structured syntax suffix, including
// application/problem+json and application/merge-patch+json.
func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
