package dataverse

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

	"github.com/vtab-hr/hr-backend-go/internal/config"
	"golang.org/x/oauth2/clientcredentials"
)

// Record is a raw Dataverse row keyed by logical field name.
type Record map[string]interface{}

// QueryOptions translate to OData query parameters.
type QueryOptions struct {
	Filter string
	Select []string
	Top    int
}

// StatusError carries the upstream HTTP status and body for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dataverse returned %d: %s", e.StatusCode, e.Body)
}

// API is the narrow record-store contract the repositories depend on.
type API interface {
	Create(ctx context.Context, entity string, fields Record) (Record, error)
	Get(ctx context.Context, entity, id string) (Record, error)
	Query(ctx context.Context, entity string, opts QueryOptions) ([]Record, error)
	Update(ctx context.Context, entity, id string, fields Record) error
	UpdateByAltKey(ctx context.Context, entity, keyField, keyValue string, fields Record) error
	Delete(ctx context.Context, entity, id string) error
	ProbeEntitySet(ctx context.Context, entity string) bool
	ProbeField(ctx context.Context, entity, field string) bool
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an OData v9.2 client authenticated with the tenant's
// client-credentials flow. The token source caches and refreshes tokens
// internally.
func NewClient(cfg config.DataverseConfig) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{strings.TrimRight(cfg.Resource, "/") + "/.default"},
	}

	httpClient := cc.Client(context.Background())
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:    strings.TrimRight(cfg.Resource, "/") + "/api/data/v9.2",
		httpClient: httpClient,
	}
}

// Escape doubles single quotes so values are safe inside OData string literals.
func Escape(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

// EqFilter builds a `field eq 'value'` predicate.
func EqFilter(field, value string) string {
	return fmt.Sprintf("%s eq '%s'", field, Escape(value))
}

// InFilter builds an or-chained equality predicate over the given values.
// Returns "" when no usable values remain.
func InFilter(field string, values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		parts = append(parts, EqFilter(field, v))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " or ") + ")"
}

func (c *Client) Create(ctx context.Context, entity string, fields Record) (Record, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+entity, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", entity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, readStatusError(resp)
	}

	var created Record
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode created record: %w", err)
	}
	return created, nil
}

func (c *Client) Get(ctx context.Context, entity, id string) (Record, error) {
	var rec Record
	err := c.doRead(ctx, fmt.Sprintf("%s/%s(%s)", c.baseURL, entity, strings.Trim(id, "{}")), &rec)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *Client) Query(ctx context.Context, entity string, opts QueryOptions) ([]Record, error) {
	params := make([]string, 0, 3)
	if opts.Filter != "" {
		params = append(params, "$filter="+url.QueryEscape(opts.Filter))
	}
	if len(opts.Select) > 0 {
		params = append(params, "$select="+strings.Join(opts.Select, ","))
	}
	if opts.Top > 0 {
		params = append(params, "$top="+strconv.Itoa(opts.Top))
	}

	endpoint := c.baseURL + "/" + entity
	if len(params) > 0 {
		endpoint += "?" + strings.Join(params, "&")
	}

	var payload struct {
		Value []Record `json:"value"`
	}
	if err := c.doRead(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Value, nil
}

func (c *Client) Update(ctx context.Context, entity, id string, fields Record) error {
	return c.patch(ctx, fmt.Sprintf("%s/%s(%s)", c.baseURL, entity, strings.Trim(id, "{}")), fields)
}

func (c *Client) UpdateByAltKey(ctx context.Context, entity, keyField, keyValue string, fields Record) error {
	return c.patch(ctx, fmt.Sprintf("%s/%s(%s='%s')", c.baseURL, entity, keyField, Escape(keyValue)), fields)
}

func (c *Client) Delete(ctx context.Context, entity, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/%s(%s)", c.baseURL, entity, strings.Trim(id, "{}")), nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", entity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return readStatusError(resp)
	}
	return nil
}

// ProbeEntitySet reports whether the entity set answers a minimal query.
func (c *Client) ProbeEntitySet(ctx context.Context, entity string) bool {
	var payload struct {
		Value []Record `json:"value"`
	}
	return c.doRead(ctx, c.baseURL+"/"+entity+"?$top=1", &payload) == nil
}

// ProbeField reports whether the entity set accepts a $select on the field.
func (c *Client) ProbeField(ctx context.Context, entity, field string) bool {
	var payload struct {
		Value []Record `json:"value"`
	}
	return c.doRead(ctx, c.baseURL+"/"+entity+"?$select="+field+"&$top=1", &payload) == nil
}

// doRead performs a GET with one retry on transient failures. Reads are
// idempotent against the record store so the retry is safe.
func (c *Client) doRead(ctx context.Context, endpoint string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			err = json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil
		}

		statusErr := readStatusError(resp)
		resp.Body.Close()
		if !retryable(resp.StatusCode) {
			return statusErr
		}
		lastErr = statusErr
	}
	return lastErr
}

func (c *Client) patch(ctx context.Context, endpoint string, fields Record) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("If-Match", "*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return readStatusError(resp)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func readStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}

// String extracts a string field from a record, "" when absent or non-string.
func (r Record) String(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Float extracts a numeric field, accepting JSON numbers and numeric strings.
func (r Record) Float(field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int64 extracts an integer field, tolerating float64 and string encodings.
func (r Record) Int64(field string) int64 {
	switch v := r[field].(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Has reports whether the field is present and non-null.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}
