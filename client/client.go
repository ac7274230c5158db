// Package client is the typed REST surface the storefront views talk to. It
// owns the auth token explicitly, classifies transport and API failures into
// the shared error taxonomy, and normalizes wire payloads before they reach
// the in-memory engines.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/logger"
)

const defaultTimeout = 15 * time.Second

var (
	errBaseURLRequired = errors.New("storefront api base url is required")
	errLoggerRequired  = errors.New("storefront api logger is required")
)

// Client calls the storefront REST API. The bearer token is held on the
// client and attached to every request while set; Login and Logout manage it,
// or callers can inject one with SetToken.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger

	mu    sync.RWMutex
	token string
}

// Options tunes the client beyond the required base URL.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

func NewClient(baseURL string, logg *logger.Logger, opts Options) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    trimmed,
		httpClient: httpClient,
		logger:     logg,
	}, nil
}

// SetToken installs a bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Token returns the currently held bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClearToken drops the held token without calling the API.
func (c *Client) ClearToken() {
	c.SetToken("")
}

type apiErrorBody struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// do executes one API call and decodes the success envelope into out. A nil
// out discards the response body after status classification.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("%s %s failed", method, path))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("read %s %s response", method, path))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.classify(resp.StatusCode, payload, method, path)
	}

	if out == nil {
		return nil
	}
	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("decode %s %s response", method, path))
	}
	return nil
}

// classify turns a non-2xx response into a coded error. The server's own
// error code wins when it names a known code; the HTTP status is the
// fallback for proxies and load balancers that answer without the envelope.
func (c *Client) classify(status int, payload []byte, method, path string) error {
	message := fmt.Sprintf("%s %s returned %d", method, path, status)

	var body apiErrorBody
	if err := json.Unmarshal(payload, &body); err == nil && body.Error.Code != "" {
		code := pkgerrors.Code(body.Error.Code)
		if !pkgerrors.KnownCode(code) {
			code = codeForStatus(status)
		}
		if body.Error.Message != "" {
			message = body.Error.Message
		}
		return pkgerrors.New(code, message)
	}

	return pkgerrors.New(codeForStatus(status), message)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	default:
		return pkgerrors.CodeDependency
	}
}
