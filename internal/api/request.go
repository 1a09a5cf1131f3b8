package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lol-insight/internal/domain"

	"github.com/valyala/fasthttp"
)

// StatusError is returned for any non-200 upstream response.
type StatusError struct {
	Code       int
	Body       string
	RetryAfter int // seconds, set on 429
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d", e.Code)
}

// StatusCode extracts the upstream status from err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// RetryAfter returns the Retry-After seconds carried by err, or 0.
func RetryAfter(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.RetryAfter
	}
	return 0
}

type request struct {
	method  string
	url     string
	headers map[string]string
	body    []byte
}

func newHTTPClient(timeout time.Duration) *fasthttp.Client {
	return &fasthttp.Client{
		MaxConnsPerHost:        100,
		ReadTimeout:            timeout,
		WriteTimeout:           timeout,
		MaxIdleConnDuration:    1 * time.Minute,
		DisablePathNormalizing: true,
	}
}

func do(ctx context.Context, client *fasthttp.Client, r request, timeout time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
		}
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(r.method)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if r.body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(r.body)
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := client.DoDeadline(req, resp, deadline); err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
		}
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		se := &StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
		if ra := string(resp.Header.Peek("Retry-After")); ra != "" {
			se.RetryAfter, _ = strconv.Atoi(ra)
		}
		return nil, se
	}

	return append([]byte(nil), resp.Body()...), nil
}

func doRequest[T any](ctx context.Context, client *fasthttp.Client, r request, timeout time.Duration) (*T, error) {
	body, err := do(ctx, client, r, timeout)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

func isTimeout(err error) bool {
	return errors.Is(err, fasthttp.ErrTimeout) ||
		errors.Is(err, fasthttp.ErrDialTimeout) ||
		errors.Is(err, fasthttp.ErrTLSHandshakeTimeout) ||
		errors.Is(err, context.DeadlineExceeded)
}
