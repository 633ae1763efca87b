// Package boardclient talks to the unit API on behalf of a board running
// outside the server process. It is the persistence side of the board
// coordinator and the source of its unit collection.
package boardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	propertyapp "github.com/estateflow/backend/internal/application/property"
	"github.com/estateflow/backend/internal/domain/board"
	"github.com/estateflow/backend/internal/domain/property"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiPrefix = "/api/v1"

// Client is an HTTP client for one tenant of the unit API. Requests are sent
// once; failures are returned to the caller as-is.
type Client struct {
	baseURL    string
	token      string
	tenantID   uuid.UUID
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithToken sets the bearer token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTenant sends X-Tenant-ID with every request. The server rejects a
// value that differs from the token's tenant.
func WithTenant(tenantID uuid.UUID) Option {
	return func(c *Client) { c.tenantID = tenantID }
}

// WithHTTPClient replaces the traced default client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the server at baseURL (e.g. "http://localhost:8080")
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PersistStatus performs the authoritative status change for a board move
func (c *Client) PersistStatus(ctx context.Context, unitID uuid.UUID, to property.UnitStatus, note string) error {
	_, err := c.Transition(ctx, unitID, to, note)
	return err
}

// Transition changes a unit's status and returns the new unit and ledger entry
func (c *Client) Transition(ctx context.Context, unitID uuid.UUID, to property.UnitStatus, note string) (*propertyapp.TransitionResponse, error) {
	body := propertyapp.TransitionStatusRequest{Status: to.String(), Note: note}
	var out propertyapp.TransitionResponse
	if _, err := c.do(ctx, http.MethodPatch, "/units/"+unitID.String()+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListQuery narrows the bulk read. A zero Page requests every matching unit.
type ListQuery struct {
	PropertyID *uuid.UUID
	Status     *property.UnitStatus
	Page       int
	PageSize   int
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.PropertyID != nil {
		v.Set("property_id", q.PropertyID.String())
	}
	if q.Status != nil {
		v.Set("status", q.Status.String())
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// ListBoardUnits is the bulk read of units with their nested summaries
func (c *Client) ListBoardUnits(ctx context.Context, q ListQuery) ([]board.BoardUnit, int64, error) {
	var units []board.BoardUnit
	meta, err := c.do(ctx, http.MethodGet, "/board/units", q.values(), nil, &units)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(units))
	if meta != nil {
		total = meta.Total
	}
	return units, total, nil
}

// History returns recent ledger entries, newest first. A zero limit uses the
// server default.
func (c *Client) History(ctx context.Context, unitID uuid.UUID, limit int) ([]propertyapp.HistoryEntryResponse, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var out []propertyapp.HistoryEntryResponse
	if _, err := c.do(ctx, http.MethodGet, "/units/"+unitID.String()+"/history", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportHistory returns the full chronological ledger of a unit
func (c *Client) ExportHistory(ctx context.Context, unitID uuid.UUID) (*propertyapp.HistoryExportResponse, error) {
	var out propertyapp.HistoryExportResponse
	if _, err := c.do(ctx, http.MethodGet, "/units/"+unitID.String()+"/history/export", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

type pageMeta struct {
	Total int64
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.tenantID != uuid.Nil {
		req.Header.Set("X-Tenant-ID", c.tenantID.String())
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (*pageMeta, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("boardclient: marshal: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reqBody)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("boardclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, parseError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("boardclient: %s %s: decode: %w", method, path, err)
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("boardclient: %s %s: decode data: %w", method, path, err)
		}
	}
	if env.Meta != nil {
		return &pageMeta{Total: env.Meta.Total}, nil
	}
	return nil, nil
}

func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env envelope
	if json.Unmarshal(body, &env) == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.RequestID = env.Error.RequestID
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
