// Package postgrest talks to a hosted PostgREST endpoint, such as the
// REST interface of a Supabase project.
//
// Queries are built with the supabase-community postgrest-go client.
// Requests go to <url>/rest/v1/<table> and carry the project key in both
// the apikey and Authorization headers.
//
// postgrest-go neither takes a context nor keeps the PostgREST error
// document, and a failed call leaves its client unusable. Every store
// call therefore builds its own client whose transport applies the
// caller's context and records the raw response, so failures still
// surface the store's message, code, details and hint.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deppfellow/carpool/internal/store"
	pgrst "github.com/supabase-community/postgrest-go"
)

var _ store.Store = (*Client)(nil)

const (
	restPath = "/rest/v1"

	// returnRepresentation asks PostgREST to echo the written row.
	returnRepresentation = "representation"
	returnMinimal        = "minimal"

	// DefaultTimeout bounds a single round trip.
	DefaultTimeout = 30 * time.Second
)

// Config holds connection settings for a PostgREST endpoint.
type Config struct {
	// URL is the project URL, e.g. https://xyz.supabase.co.
	URL string

	// Key is sent as apikey and as the bearer token.
	Key string

	// Timeout bounds each round trip. Zero means DefaultTimeout.
	Timeout time.Duration

	// Transport overrides the HTTP transport. Optional.
	Transport http.RoundTripper
}

// Client is a store.Store backed by PostgREST.
type Client struct {
	restURL   string
	key       string
	timeout   time.Duration
	transport http.RoundTripper
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("postgrest: url is required")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("postgrest: key is required")
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgrest: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("postgrest: url must be http or https, got %q", cfg.URL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Client{
		restURL:   strings.TrimRight(cfg.URL, "/") + restPath,
		key:       cfg.Key,
		timeout:   timeout,
		transport: transport,
	}, nil
}

// Select reads table with select=*, equality filters and ordering.
func (c *Client) Select(ctx context.Context, table string, q store.Query) ([]json.RawMessage, error) {
	client, rec, err := c.session(ctx)
	if err != nil {
		return nil, store.NewError(store.OpSelect, table, err)
	}

	query := client.From(table).Select("*", "", false)
	for _, f := range q.Filters {
		query = query.Eq(f.Column, fmt.Sprint(f.Value))
	}
	for _, o := range q.Order {
		query = query.Order(o.Column, &pgrst.OrderOpts{Ascending: !o.Descending})
	}

	body, _, err := query.Execute()
	if err != nil {
		return nil, rec.failure(store.OpSelect, table, err)
	}

	rows := []json.RawMessage{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, store.NewError(store.OpSelect, table, fmt.Errorf("decode rows: %w", err))
	}
	return rows, nil
}

// Insert writes row and asks for the stored row back as a single object.
func (c *Client) Insert(ctx context.Context, table string, row any) (json.RawMessage, error) {
	// Marshalled here so an encoding failure never reaches the client.
	payload, err := json.Marshal(row)
	if err != nil {
		return nil, store.NewError(store.OpInsert, table, err)
	}

	client, rec, err := c.session(ctx)
	if err != nil {
		return nil, store.NewError(store.OpInsert, table, err)
	}

	body, _, err := client.From(table).
		Insert(json.RawMessage(payload), false, "", returnRepresentation, "").
		Single().
		Execute()
	if err != nil {
		return nil, rec.failure(store.OpInsert, table, err)
	}
	if !json.Valid(body) {
		return nil, store.NewError(store.OpInsert, table, fmt.Errorf("invalid JSON in response"))
	}
	return json.RawMessage(body), nil
}

// Delete removes the rows matching every filter.
func (c *Client) Delete(ctx context.Context, table string, filters ...store.Filter) error {
	if err := store.RequireFilters(table, filters); err != nil {
		return err
	}

	client, rec, err := c.session(ctx)
	if err != nil {
		return store.NewError(store.OpDelete, table, err)
	}

	query := client.From(table).Delete(returnMinimal, "")
	for _, f := range filters {
		query = query.Eq(f.Column, fmt.Sprint(f.Value))
	}

	if _, _, err := query.Execute(); err != nil {
		return rec.failure(store.OpDelete, table, err)
	}
	return nil
}

// Ping fetches the PostgREST root document.
func (c *Client) Ping(ctx context.Context) error {
	client, rec, err := c.session(ctx)
	if err != nil {
		return store.NewError(store.OpPing, "", err)
	}

	if !client.Ping() {
		return rec.failure(store.OpPing, "", client.ClientError)
	}
	return nil
}

// Close drops idle keep-alive connections.
func (c *Client) Close() {
	if closer, ok := c.transport.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// session returns a postgrest-go client bound to ctx for a single call.
func (c *Client) session(ctx context.Context) (*pgrst.Client, *recorder, error) {
	client := pgrst.NewClient(c.restURL, "", nil)
	if client.ClientError != nil {
		return nil, nil, client.ClientError
	}

	rec := &recorder{ctx: ctx, timeout: c.timeout, next: c.transport}
	client.SetApiKey(c.key).SetAuthToken(c.key)
	client.Transport.Parent = rec

	return client, rec, nil
}

// recorder is the round tripper under a postgrest-go client. It applies
// the call's context and keeps the last response for error decoding.
type recorder struct {
	ctx     context.Context
	timeout time.Duration
	next    http.RoundTripper

	status int
	body   []byte
}

func (r *recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	out := req.Clone(ctx)

	// The client adds its default Accept after the per-request one.
	if accepts := out.Header.Values("Accept"); len(accepts) > 1 {
		out.Header.Set("Accept", accepts[0])
	}

	resp, err := r.next.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Read before cancel fires.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	r.status = resp.StatusCode
	r.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return resp, nil
}

// failure converts a failed call into a *store.Error. An HTTP error reply
// is decoded from the recorded body; anything else keeps err.
func (r *recorder) failure(op store.Op, table string, err error) *store.Error {
	if r.status >= http.StatusBadRequest {
		return decodeError(op, table, r.status, r.body)
	}
	if err == nil {
		err = fmt.Errorf("unexpected status %d", r.status)
	}
	return store.NewError(op, table, err)
}

// apiError is the error document PostgREST returns.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func decodeError(op store.Op, table string, status int, body []byte) *store.Error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = http.StatusText(status)
		}
		return &store.Error{Op: op, Table: table, Message: message, Status: status}
	}

	return &store.Error{
		Op:      op,
		Table:   table,
		Message: apiErr.Message,
		Code:    apiErr.Code,
		Details: apiErr.Details,
		Hint:    apiErr.Hint,
		Status:  status,
	}
}
