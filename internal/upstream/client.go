// Package upstream is the gateway's single door to the SiBuku backend
// API. Every browser-facing handler translates into exactly one call
// here; the client attaches the bearer token, forwards the body and
// query string, and hands back the upstream response for relaying.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sibuku/sibuku-gateway/internal/metrics"
	"github.com/sibuku/sibuku-gateway/internal/patterns"
	log "github.com/sirupsen/logrus"
)

// ErrUnavailable is returned while the breaker refuses upstream calls.
var ErrUnavailable = errors.New("upstream unavailable")

// errServerStatus marks a relayed 5xx so the breaker counts it as a
// failure without discarding the response.
var errServerStatus = errors.New("upstream returned a server error")

// FormFile is one file field of a rebuilt multipart payload.
type FormFile struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Request describes one upstream call. Either Path or Candidates is set;
// with Candidates the client tries each in order and accepts the first
// response whose status is not 404.
type Request struct {
	Operation  string
	Method     string
	Path       string
	Candidates []string
	Query      url.Values
	Token      string
	JSON       any
	RawJSON    []byte
	FormValues map[string]string
	FormFiles  []FormFile
}

func (r Request) multipart() bool {
	return len(r.FormValues) > 0 || len(r.FormFiles) > 0
}

// Result is the upstream response, raw plus decoded when it was JSON.
type Result struct {
	Status      int
	ContentType string
	Body        []byte
	JSON        any
	Path        string
}

// IsJSON reports whether the upstream declared a JSON body.
func (r *Result) IsJSON() bool {
	return strings.Contains(r.ContentType, "application/json")
}

// NoContent reports a 204 response; its body must never be parsed.
func (r *Result) NoContent() bool {
	return r.Status == http.StatusNoContent
}

// Client forwards requests to the backend API with a circuit breaker on
// the transport and a bulkhead bounding concurrent uploads. It holds no
// state about upstream data; every call fetches fresh.
type Client struct {
	api     *resty.Client
	uploads *resty.Client
	base    string
	breaker *patterns.CircuitBreakerWrapper
	guard   *patterns.Bulkhead
}

// New builds a Client for the given backend base URL.
func New(baseURL, serviceName string) *Client {
	return &Client{
		// No automatic retries: checkout is not idempotent and a retry
		// could double-submit it.
		api: resty.New().
			SetTimeout(patterns.DefaultTimeout).
			SetRetryCount(0),
		uploads: resty.New().
			SetTimeout(patterns.UploadTimeout).
			SetRetryCount(0),
		base:    strings.TrimRight(baseURL, "/"),
		breaker: patterns.NewCircuitBreaker("Backend", serviceName),
		guard:   patterns.NewBulkhead(4, "uploads", serviceName),
	}
}

// BreakerState returns the backend circuit's state label.
func (c *Client) BreakerState() string {
	return c.breaker.GetState()
}

// BreakerStateValue returns the numeric state (0=closed, 1=open, 2=half-open).
func (c *Client) BreakerStateValue() int {
	return c.breaker.GetStateValue()
}

// UploadGuardName returns the name of the bulkhead bounding uploads.
func (c *Client) UploadGuardName() string {
	return c.guard.GetName()
}

// Do performs the upstream call described by req.
func (c *Client) Do(ctx context.Context, req Request) (*Result, error) {
	candidates := req.Candidates
	if len(candidates) == 0 {
		candidates = []string{req.Path}
	}

	var last *Result
	for i, path := range candidates {
		res, err := c.call(ctx, req, path)
		if err != nil {
			return nil, err
		}
		last = res

		// 404 during candidate search means "wrong path, try the next
		// one"; only the final attempt's 404 is surfaced.
		if res.Status == http.StatusNotFound && i < len(candidates)-1 {
			continue
		}

		if i > 0 && res.Status != http.StatusNotFound {
			metrics.FallbackResolutionsTotal.WithLabelValues(req.Operation, path).Inc()
			log.WithFields(log.Fields{
				"operation": req.Operation,
				"path":      path,
				"primary":   candidates[0],
			}).Warn("Upstream resolved by non-primary candidate path")
		}
		return res, nil
	}
	return last, nil
}

func (c *Client) call(ctx context.Context, req Request, path string) (*Result, error) {
	exec := func() (*Result, error) {
		out, err := c.breaker.Execute(func() (interface{}, error) {
			return c.send(ctx, req, path)
		})
		res, _ := out.(*Result)

		if errors.Is(err, errServerStatus) {
			// Counted against the breaker, still relayed verbatim.
			return res, nil
		}
		if err != nil {
			metrics.UpstreamFailuresTotal.WithLabelValues(req.Operation).Inc()
			if patterns.IsOpen(err) {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, patterns.FormatError("Backend", err))
			}
			return nil, fmt.Errorf("upstream %s %s: %w", req.Method, path, err)
		}
		return res, nil
	}

	if req.multipart() {
		var res *Result
		var callErr error
		if err := c.guard.Execute(func() error {
			res, callErr = exec()
			return callErr
		}); err != nil {
			if callErr == nil {
				// Bulkhead rejection, not a transport failure.
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			return nil, err
		}
		return res, nil
	}
	return exec()
}

func (c *Client) send(ctx context.Context, req Request, path string) (*Result, error) {
	client := c.api
	if req.multipart() {
		client = c.uploads
	}

	r := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")

	if req.Token != "" {
		r.SetHeader("Authorization", "Bearer "+req.Token)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}

	switch {
	case req.multipart():
		// Rebuild the form field by field; resty writes its own
		// multipart boundary header. Never set Content-Type here.
		if len(req.FormValues) > 0 {
			r.SetMultipartFormData(req.FormValues)
		}
		for _, f := range req.FormFiles {
			r.SetMultipartField(f.Field, f.Name, f.ContentType, bytes.NewReader(f.Data))
		}
	case req.RawJSON != nil:
		r.SetHeader("Content-Type", "application/json").SetBody(req.RawJSON)
	case req.JSON != nil:
		r.SetHeader("Content-Type", "application/json").SetBody(req.JSON)
	}

	resp, err := r.Execute(req.Method, c.base+path)
	if err != nil {
		return nil, fmt.Errorf("HTTP error: %w", err)
	}

	res := &Result{
		Status:      resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
		Path:        path,
	}
	if res.IsJSON() && !res.NoContent() && len(res.Body) > 0 {
		var decoded any
		if jsonErr := json.Unmarshal(res.Body, &decoded); jsonErr == nil {
			res.JSON = decoded
		}
	}

	metrics.UpstreamRequestsTotal.
		WithLabelValues(req.Operation, strconv.Itoa(res.Status)).Inc()

	if res.Status >= http.StatusInternalServerError {
		return res, errServerStatus
	}
	return res, nil
}
