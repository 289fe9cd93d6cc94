package rowstore

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

	"golang.org/x/time/rate"

	"github.com/okian/squadrate/pkg/logger"
)

const (
	rowsPath          = "/api/database/rows/table/"
	errorBodyLimit    = 512
	defaultReqTimeout = 15 * time.Second
)

// listResponse is the Baserow list rows envelope.
type listResponse struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []RawRow `json:"results"`
}

// BaserowClient talks to the Baserow REST API with a database token. It
// never retries; a failed request surfaces to the caller as is.
type BaserowClient struct {
	base     *url.URL
	token    string
	pageSize int
	http     *http.Client
	limiter  *rate.Limiter
	log      logger.Logger
}

// NewBaserowClient returns a client for the instance at baseURL.
func NewBaserowClient(baseURL, token string, opts ...Option) (*BaserowClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	c := &BaserowClient{
		base:     u,
		token:    token,
		pageSize: DefaultPageSize,
		http:     &http.Client{Timeout: defaultReqTimeout},
		limiter:  rate.NewLimiter(defaultRPS, defaultBurst),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *BaserowClient) tableURL(table string) *url.URL {
	u := *c.base
	u.Path = c.base.Path + rowsPath + url.PathEscape(table) + "/"
	return &u
}

// firstPageURL addresses page 1 with user field names.
func (c *BaserowClient) firstPageURL(table string) string {
	u := c.tableURL(table)
	q := url.Values{}
	q.Set("user_field_names", "true")
	q.Set("page", "1")
	q.Set("size", strconv.Itoa(c.pageSize))
	u.RawQuery = q.Encode()
	return u.String()
}

// ListPage implements Lister. Continuation tokens are the absolute "next"
// URLs returned by Baserow.
func (c *BaserowClient) ListPage(ctx context.Context, table, token string) (Page, error) {
	target := token
	if target == "" {
		target = c.firstPageURL(table)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	var body listResponse
	if err := c.do(req, table, &body); err != nil {
		return Page{}, err
	}

	page := Page{Rows: body.Results}
	if body.Next != nil {
		page.Next = *body.Next
	}
	c.log.Debug(ctx, "listed page",
		logger.String("table", table),
		logger.Int("rows", len(page.Rows)),
		logger.Bool("more", page.Next != ""),
	)
	return page, nil
}

// Insert implements Inserter.
func (c *BaserowClient) Insert(ctx context.Context, table string, row RawRow) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row for %s: %w", table, err)
	}
	u := c.tableURL(table)
	u.RawQuery = "user_field_names=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, table, nil)
}

func (c *BaserowClient) do(req *http.Request, table string, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, table, err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, table, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		c.log.Warn(req.Context(), "row store rejected request",
			logger.String("table", table),
			logger.String("method", req.Method),
			logger.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: %s %s: %d %s", ErrUnexpectedStatus, req.Method, table,
			resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", table, err)
	}
	return nil
}
