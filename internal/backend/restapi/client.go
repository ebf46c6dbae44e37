// Package restapi implements the service.Service interface over the TaskWave REST API.
package restapi

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
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"taskwave/internal/logging"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = 30 * time.Second

	// RequestIDHeader carries a per-request id for correlating client and server logs.
	RequestIDHeader = "X-Request-ID"

	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	tasksPath    = "/Task"
)

// Client implements service.Service against a fixed base URL.
// The bearer token is taken from the session manager on every request, so a
// login or logout takes effect without rebuilding the client.
type Client struct {
	baseURL  string
	base     http.RoundTripper
	sessions *session.Manager
	timeout  time.Duration
	log      *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTransport replaces the underlying round tripper (for testing).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.base = rt
		}
	}
}

// New creates a client for the API at baseURL. sessions may be nil, in which
// case requests are sent without a token.
func New(baseURL string, sessions *session.Manager, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL: %q", baseURL)
	}
	c := &Client{
		baseURL:  strings.TrimRight(u.String(), "/"),
		base:     http.DefaultTransport,
		sessions: sessions,
		timeout:  APITimeout,
		log:      logging.Component("restapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// httpClient returns a client that attaches the active session's bearer token.
func (c *Client) httpClient() *http.Client {
	rt := c.base
	if sess, ok := c.sessions.Active(); ok {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: sess.Token, TokenType: "Bearer"}),
			Base:   c.base,
		}
	}
	return &http.Client{Transport: rt}
}

// Request sends one JSON request. body may be nil. When out is non-nil and
// the response has a body, it is decoded into out; an empty body leaves out
// untouched. Non-2xx responses and transport failures return *service.APIError.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	log := c.log.WithFields(logrus.Fields{"method": method, "path": path, "request_id": reqID})
	start := time.Now()

	res, err := c.httpClient().Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return wrapError(err)
	}
	defer res.Body.Close()

	log.WithFields(logrus.Fields{
		"status":   res.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("request done")

	if err := googleapi.CheckResponse(res); err != nil {
		return wrapError(err)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return wrapError(err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &service.APIError{Status: res.StatusCode, Message: fmt.Sprintf("invalid response body: %v", err)}
	}
	return nil
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, creds service.Credentials) (service.AuthResult, error) {
	var res service.AuthResult
	if err := c.Request(ctx, http.MethodPost, loginPath, creds, &res); err != nil {
		return service.AuthResult{}, err
	}
	return res, nil
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, reg service.Registration) (service.AuthResult, error) {
	var res service.AuthResult
	if err := c.Request(ctx, http.MethodPost, registerPath, reg, &res); err != nil {
		return service.AuthResult{}, err
	}
	return res, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.Request(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var task service.Task
	if err := c.Request(ctx, http.MethodPost, tasksPath, in, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask implements service.Service. If the server answers without a
// body, the sent object is returned.
func (c *Client) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	updated := task
	if err := c.Request(ctx, http.MethodPut, taskPath(task.ID), task, &updated); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id int) string {
	return fmt.Sprintf("%s/%d", tasksPath, id)
}

// wrapError converts transport and HTTP errors into *service.APIError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &service.APIError{Status: gErr.Code, Message: errorMessage(gErr)}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &service.APIError{Message: "request timed out"}
	}
	if errors.Is(err, context.Canceled) {
		return &service.APIError{Message: "cancelled"}
	}
	return &service.APIError{Message: err.Error()}
}

// errorMessage picks the most useful text from an error response. The API
// answers with plain text or with a JSON object carrying message/title/error.
func errorMessage(gErr *googleapi.Error) string {
	if gErr.Message != "" {
		return gErr.Message
	}
	body := strings.TrimSpace(gErr.Body)
	if body == "" {
		return http.StatusText(gErr.Code)
	}

	var asString string
	if json.Unmarshal([]byte(body), &asString) == nil {
		return asString
	}
	var obj map[string]any
	if json.Unmarshal([]byte(body), &obj) == nil {
		for _, key := range []string{"message", "title", "error", "detail"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
		return http.StatusText(gErr.Code)
	}
	return body
}
