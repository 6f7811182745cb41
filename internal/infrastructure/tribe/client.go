package tribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
)

const (
	eventsPath   = "tribe/events/v1/events"
	loginPath    = "jwt-auth/v1/token"
	validatePath = "jwt-auth/v1/token/validate"

	maxBodyBytes = 8 << 20
)

// Client talks to the WordPress REST API: Tribe Events for the calendar and
// the JWT-auth plugin for login and token validation.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a client for baseURL, the wp-json root of the site
// (e.g. https://pinkpolitiek.nl/wp-json).
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse remote base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("remote base url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// FetchEvents retrieves one page of events. Pages below 2 request the first
// page without a page parameter.
func (c *Client) FetchEvents(ctx context.Context, page int) (entities.RemotePage, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	} else {
		page = 1
	}
	endpoint := c.endpoint(eventsPath, query)

	body, err := c.do(ctx, http.MethodGet, endpoint, "")
	if err != nil {
		return entities.RemotePage{}, err
	}

	var env eventsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return entities.RemotePage{}, &domain.DecodeError{Endpoint: eventsPath, Err: err}
	}

	events := make([]entities.RemoteEvent, 0, len(env.Events))
	for _, raw := range env.Events {
		ev, err := decodeEvent(raw)
		if err != nil {
			return entities.RemotePage{}, &domain.DecodeError{Endpoint: eventsPath, Err: err}
		}
		events = append(events, ev)
	}

	c.logger.Debug("fetched remote events",
		"page", page,
		"count", len(events),
		"total", env.Total,
		"total_pages", env.TotalPages,
	)

	return entities.RemotePage{
		Page:       page,
		Events:     events,
		Total:      env.Total,
		TotalPages: env.TotalPages,
	}, nil
}

// Login exchanges credentials for a JWT issued by the remote.
func (c *Client) Login(ctx context.Context, username, password string) (entities.LoginResult, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, c.endpoint(loginPath, query), "")
	if err != nil {
		return entities.LoginResult{}, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return entities.LoginResult{}, &domain.DecodeError{Endpoint: loginPath, Err: err}
	}
	if resp.Token == "" {
		return entities.LoginResult{}, &domain.DecodeError{Endpoint: loginPath, Err: errors.New("response carries no token")}
	}

	return entities.LoginResult{
		Token:           resp.Token,
		UserEmail:       resp.UserEmail,
		UserNicename:    resp.UserNicename,
		UserDisplayName: resp.UserDisplayName,
	}, nil
}

// ValidateToken asks the remote whether token is still valid. A 4xx answer
// wraps domain.ErrInvalidToken; transport failures are *domain.ConnectionError.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, c.endpoint(validatePath, nil), token)
	if err == nil {
		return nil
	}
	var remoteErr *domain.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Status >= 400 && remoteErr.Status < 500 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidToken, remoteErr)
	}
	return err
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs the request and returns the body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, endpoint, bearer string) ([]byte, error) {
	// Endpoint without the query: the login query carries the password.
	logEndpoint := strings.SplitN(endpoint, "?", 2)[0]

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, &domain.ConnectionError{Endpoint: logEndpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote request failed", "method", method, "endpoint", logEndpoint, "err", err)
		return nil, &domain.ConnectionError{Endpoint: logEndpoint, Err: err}
	}
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, maxBodyBytes)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.ConnectionError{Endpoint: logEndpoint, Err: err}
	}

	c.logger.Debug("remote request",
		"method", method,
		"endpoint", logEndpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp.StatusCode, body)
	}
	return body, nil
}

// remoteError prefers the WordPress error envelope and falls back to the raw body.
func remoteError(status int, body []byte) *domain.RemoteError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && (env.Code != "" || env.Message != "") {
		if env.Data.Status != 0 {
			status = env.Data.Status
		}
		return &domain.RemoteError{Status: status, Code: env.Code, Message: env.Message}
	}
	return &domain.RemoteError{Status: status, Message: strings.TrimSpace(string(body))}
}
