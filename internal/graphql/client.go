package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/jamesprial/gameshelf/internal/config"
)

const defaultTimeout = 30 * time.Second

// RequestIDHeader carries the per-request uuid that is also logged.
const RequestIDHeader = "X-Request-ID"

// HTTPClient is a concrete implementation of the Client interface that sends
// GraphQL requests over HTTP using the standard library net/http package.
type HTTPClient struct {
	httpClient *http.Client
	graphqlURL string
	apiKey     string
	headers    map[string]string
	logger     *zap.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client. The configured
// timeout is not applied to a replacement client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewHTTPClient constructs an HTTPClient from the provided GraphQLConfig.
// It returns an error if cfg.URL is empty. When cfg.Timeout is zero or
// negative, a default timeout of 30 seconds is used. The API key is
// optional; when set it is sent as x-api-key.
func NewHTTPClient(cfg config.GraphQLConfig, opts ...Option) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("graphql: URL is required")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		graphqlURL: normalizeURL(cfg.URL),
		apiKey:     cfg.APIKey,
		headers:    cfg.Headers,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the endpoint requests are sent to.
func (c *HTTPClient) URL() string {
	return c.graphqlURL
}

// normalizeURL trims trailing slashes from rawURL. The path is otherwise
// used as configured.
func normalizeURL(rawURL string) string {
	return strings.TrimRight(rawURL, "/")
}

// graphqlRequest is the JSON body shape for a GraphQL HTTP request.
type graphqlRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the JSON body shape for a GraphQL HTTP response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors"`
}

// Execute sends op to the configured endpoint and returns the raw JSON bytes
// of the "data" field on success. Variables may be nil, in which case the
// "variables" key is omitted from the request body.
//
// Execute returns an error if:
//   - the HTTP request cannot be created or sent
//   - the server responds with a non-2xx status code (ErrUnauthorized for 401)
//   - the response body cannot be decoded as JSON
//   - the GraphQL response contains one or more errors (*ResponseError)
//   - the response data is missing or null (ErrNoData)
func (c *HTTPClient) Execute(ctx context.Context, op Operation, variables map[string]any) ([]byte, error) {
	reqBody := graphqlRequest{
		OperationName: op.Name,
		Query:         op.Query,
		Variables:     variables,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("graphql: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("graphql: create request: %w", err)
	}
	requestID := uuid.NewString()
	c.setRequestHeaders(req, requestID)

	log := c.logger.With(
		zap.String("operation", op.String()),
		zap.String("request_id", requestID),
	)
	start := time.Now()
	log.Debug("graphql request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("graphql request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("graphql: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug("graphql response", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("graphql: unexpected HTTP status %d", resp.StatusCode)
	}

	var gqlResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, fmt.Errorf("graphql: decode response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return nil, &ResponseError{Operation: op.Name, Errors: gqlResp.Errors}
	}
	if len(gqlResp.Data) == 0 || bytes.Equal(gqlResp.Data, []byte("null")) {
		return nil, ErrNoData
	}

	return []byte(gqlResp.Data), nil
}

func (c *HTTPClient) setRequestHeaders(req *http.Request, requestID string) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
}
