package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/lemonade-framework/smartemailing-go/internal/apierrors"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// Client is the HTTP API client.
type Client struct {
	baseURL     string
	credentials Credentials
	httpClient  *http.Client
	timeout     time.Duration
	verifyPeer  bool
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithVerifyPeer enables full certificate chain verification.
func WithVerifyPeer(verify bool) Option {
	return func(c *Client) {
		c.verifyPeer = verify
	}
}

// WithHTTPClient replaces the default HTTP client. Timeout and TLS options
// are then the caller's responsibility.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a new API client.
func New(credentials Credentials, opts ...Option) (*Client, error) {
	if !credentials.HasUser() || !credentials.HasToken() {
		return nil, apierrors.ErrMissingCredentials
	}

	c := &Client{
		baseURL:     DefaultBaseURL,
		credentials: credentials,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: newTransport(c.verifyPeer),
		}
	}

	return c, nil
}

// Credentials returns the credential holder.
func (c *Client) Credentials() Credentials {
	return c.credentials
}

// BaseURL returns the service origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call dispatches a request to an endpoint of the registry.
func (c *Client) Call(ctx context.Context, ep Endpoint, id string, payload any) (Reply, error) {
	return c.Dispatch(ctx, ep.Method, ep.Action(id), payload)
}

// Dispatch issues one request and classifies the response.
//
// HTTP error statuses never produce an error; they are folded into the
// returned Reply. Only failures outside the classification (connection,
// timeout, TLS, unreadable body) return a *apierrors.TransportError.
func (c *Client) Dispatch(ctx context.Context, method, action string, payload any) (Reply, error) {
	reqURL := strings.TrimRight(c.baseURL, "/") + "/" + ResolvePath(action)

	var bodyReader io.Reader
	if !isNilPayload(payload) {
		data, err := json.Marshal(payload)
		if err != nil {
			return Reply{}, &apierrors.TransportError{
				Message: fmt.Sprintf("failed to marshal request body: %v", err),
				URL:     reqURL,
				Err:     err,
			}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return Reply{}, &apierrors.TransportError{
			Message: fmt.Sprintf("failed to create request: %v", err),
			URL:     reqURL,
			Err:     err,
		}
	}

	req.SetBasicAuth(c.credentials.User(), c.credentials.Token())
	req.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, &apierrors.TransportError{
			Message: err.Error(),
			URL:     reqURL,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, &apierrors.TransportError{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			URL:     reqURL,
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	return classify(resp.StatusCode, body), nil
}

// isNilPayload reports whether payload carries no body, including a nil
// pointer, map or slice stored in the interface.
func isNilPayload(payload any) bool {
	if payload == nil {
		return true
	}
	v := reflect.ValueOf(payload)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// classify maps a status code and body onto the normalized result shapes.
func classify(status int, body []byte) Reply {
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return parseSuccessBody(body)
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusUnprocessableEntity:
		return parseErrorBody(body)
	}

	if status >= 400 {
		return errorReply(MessageUnknownError)
	}
	return errorReply(MessageUnknownSuccess)
}

func parseSuccessBody(body []byte) Reply {
	decoded, ok := decodeJSON(body)
	if !ok {
		return statusOKReply()
	}

	switch v := decoded.(type) {
	case map[string]any:
		return okReply(Result(v))
	case []any:
		return okReply(Result{"data": v})
	default:
		return statusOKReply()
	}
}

func parseErrorBody(body []byte) Reply {
	decoded, ok := decodeJSON(body)
	if !ok {
		return errorReply(MessageError)
	}

	obj, isObject := decoded.(map[string]any)
	if !isObject {
		return errorReply(MessageError)
	}

	msg, present := obj["message"]
	if !present || msg == nil {
		return errorReply(MessageError)
	}
	return errorReply(stringify(msg))
}

// decodeJSON decodes body keeping numbers as json.Number so ids survive
// unchanged. It reports false for empty or malformed bodies.
func decodeJSON(body []byte) (any, bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}
