// Package api is the HTTP client for the employee store. The store follows json-server
// conventions: list filters and paging go in the query string and the filtered total
// comes back in the X-Total-Count header.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"roster-cli/internal/logging"
	"roster-cli/internal/model"
	"roster-cli/internal/query"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderRequestID  = "X-Request-ID"
)

type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
	newID   func() string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds every request, body decoding included. Zero leaves requests
// unbounded. The http.Client itself is left alone since callers may share it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client rooted at baseURL, e.g. http://localhost:3000/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api: empty base url")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: unsupported scheme %q", u.Scheme)
	}
	c := &Client{
		base:  u,
		http:  &http.Client{},
		log:   zerolog.Nop(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return strings.TrimRight(c.base.String(), "/") }

// ListParams maps a query onto json-server list parameters. No-filter sentinels are left
// out.
func ListParams(q query.Query) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("_page", strconv.Itoa(q.Page))
	v.Set("_limit", strconv.Itoa(q.PageSize))
	v.Set("_sort", string(q.Sort))
	v.Set("_order", string(q.Order))
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.HasDepartment {
		v.Set("departmentId", strconv.Itoa(q.DepartmentID))
	}
	if q.Status != query.StatusAny {
		v.Set("status", string(q.Status))
	}
	return v
}

func (c *Client) ListEmployees(ctx context.Context, q query.Query) (model.Page, error) {
	const op = "list employees"
	var items []model.Employee
	hdr, err := c.do(ctx, op, http.MethodGet, "employees", ListParams(q), nil, &items)
	if err != nil {
		return model.Page{}, err
	}
	raw := strings.TrimSpace(hdr.Get(HeaderTotalCount))
	if raw == "" {
		return model.Page{}, &DecodeError{Op: op, Err: fmt.Errorf("missing %s header", HeaderTotalCount)}
	}
	total, err := strconv.Atoi(raw)
	if err != nil || total < 0 {
		return model.Page{}, &DecodeError{Op: op, Err: fmt.Errorf("invalid %s %q", HeaderTotalCount, raw)}
	}
	if items == nil {
		items = []model.Employee{}
	}
	return model.Page{Items: items, Total: total}, nil
}

// AllEmployees fetches the whole collection without paging.
func (c *Client) AllEmployees(ctx context.Context) ([]model.Employee, error) {
	var items []model.Employee
	if _, err := c.do(ctx, "list all employees", http.MethodGet, "employees", nil, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Employee{}
	}
	return items, nil
}

func (c *Client) GetEmployee(ctx context.Context, id int) (model.Employee, error) {
	var e model.Employee
	_, err := c.do(ctx, "get employee", http.MethodGet, employeePath(id), nil, nil, &e)
	if isStatus(err, http.StatusNotFound) {
		return model.Employee{}, &NotFoundError{Kind: "employee", ID: id}
	}
	return e, err
}

func (c *Client) CreateEmployee(ctx context.Context, in model.EmployeeInput) (model.Employee, error) {
	var e model.Employee
	if _, err := c.do(ctx, "create employee", http.MethodPost, "employees", nil, in, &e); err != nil {
		return model.Employee{}, err
	}
	return e, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id int, in model.EmployeeInput) (model.Employee, error) {
	var e model.Employee
	_, err := c.do(ctx, "update employee", http.MethodPut, employeePath(id), nil, in.WithID(id), &e)
	if isStatus(err, http.StatusNotFound) {
		return model.Employee{}, &NotFoundError{Kind: "employee", ID: id}
	}
	if err != nil {
		return model.Employee{}, err
	}
	return e, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int) error {
	_, err := c.do(ctx, "delete employee", http.MethodDelete, employeePath(id), nil, nil, nil)
	if isStatus(err, http.StatusNotFound) {
		return &NotFoundError{Kind: "employee", ID: id}
	}
	return err
}

func (c *Client) ListDepartments(ctx context.Context) ([]model.Department, error) {
	var out []model.Department
	if _, err := c.do(ctx, "list departments", http.MethodGet, "departments", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Department{}
	}
	return out, nil
}

func employeePath(id int) string { return "employees/" + strconv.Itoa(id) }

// logger prefers the request-scoped logger carried by ctx.
func (c *Client) logger(ctx context.Context) *zerolog.Logger {
	if l := logging.From(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &c.log
}

func (c *Client) do(ctx context.Context, op, method, path string, params url.Values, body any, out any) (http.Header, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	log := c.logger(ctx)
	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	reqID := c.newID()
	req.Header.Set(HeaderRequestID, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Str("request_id", reqID).Str("method", method).Str("url", u.String()).Err(err).Msg("api request failed")
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	log.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		var detail error
		if s := strings.TrimSpace(string(msg)); s != "" {
			detail = errors.New(s)
		}
		return resp.Header, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: detail}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return resp.Header, &TransportError{Op: op, Err: err}
		}
		return resp.Header, &DecodeError{Op: op, Err: err}
	}
	return resp.Header, nil
}
