package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/roster/internal/domain/types"
	"github.com/rotisserie/eris"
)

// Client talks to the roster HTTP API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Health checks that /healthz answers 200.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return eris.Wrapf(ErrUnhealthy, "%v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return eris.Wrapf(ErrUnhealthy, "status %d", resp.StatusCode)
	}
	return nil
}

// Login opens a session and keeps its token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (types.LoginResponse, error) {
	var out types.LoginResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.json(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return out, err
	}
	c.token = out.Token
	return out, nil
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.token = ""
	if resp.StatusCode != http.StatusNoContent {
		return eris.Wrapf(ErrRequest, "logout: status %d", resp.StatusCode)
	}
	return nil
}

// Employees fetches the session's employee list.
func (c *Client) Employees(ctx context.Context) ([]types.EmployeeSummary, error) {
	var out []types.EmployeeSummary
	err := c.json(ctx, http.MethodGet, "/employees", nil, &out)
	return out, err
}

// SalaryChart fetches the salary view.
func (c *Client) SalaryChart(ctx context.Context) (types.SalaryChart, error) {
	var out types.SalaryChart
	err := c.json(ctx, http.MethodGet, "/charts/salary", nil, &out)
	return out, err
}

// CityMap fetches the city map view.
func (c *Client) CityMap(ctx context.Context) (types.CityMap, error) {
	var out types.CityMap
	err := c.json(ctx, http.MethodGet, "/map", nil, &out)
	return out, err
}

func (c *Client) json(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return eris.Wrapf(ErrRequest, "%s %s: encode: %v", method, path, err)
		}
		body = bytes.NewReader(data)
	}
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrapf(ErrRequest, "%s %s: read: %v", method, path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return eris.Wrapf(ErrRequest, "%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrapf(ErrRequest, "%s %s: decode: %v", method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, eris.Wrapf(ErrRequest, "%s %s: %v", method, path, err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(ErrRequest, "%s %s: %v", method, path, err)
	}
	return resp, nil
}
