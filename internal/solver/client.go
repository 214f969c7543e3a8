// Package solver submits a drawing or uploaded image to the remote solver
// and decodes its answer.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"pkt.systems/pslog"
)

// DefaultURL is the local development endpoint.
const DefaultURL = "http://localhost:6277/calculate"

// MaxCommentLength is the longest accepted comment, in characters.
const MaxCommentLength = 200

// maxResponse bounds the decoded reply.
const maxResponse = 4 << 20

var (
	ErrCommentTooLong = fmt.Errorf("comment exceeds %d characters", MaxCommentLength)
	ErrBusy           = errors.New("a submission is already in progress")
)

// StatusError is a non-success reply from the solver.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("solver responded %s", e.Status)
}

// Request is the JSON body sent to the solver.
type Request struct {
	Image   string `json:"image"`
	Comment string `json:"comment"`
}

// Client posts submissions to one endpoint. At most one submission is in
// flight at a time.
type Client struct {
	url  string
	http *http.Client
	busy atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithTimeout bounds each submission.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// New creates a client for url. An empty url selects DefaultURL.
func New(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{url: url, http: &http.Client{Timeout: 60 * time.Second}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL returns the endpoint.
func (c *Client) URL() string { return c.url }

// Busy reports whether a submission is in flight.
func (c *Client) Busy() bool { return c.busy.Load() }

// Submit posts an image data URL and an optional comment. It fails with
// ErrBusy while another submission is running and never retries.
func (c *Client) Submit(ctx context.Context, image, comment string) (*Result, error) {
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	id := uuid.NewString()
	log := pslog.Ctx(ctx).With("request_id", id)

	body, err := json.Marshal(Request{Image: image, Comment: comment})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", id)

	start := time.Now()
	log.Debug("solver request", "url", c.url, "bytes", len(body), "comment_len", utf8.RuneCountInString(comment))
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("solver request failed", "err", err)
		return nil, fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponse))
		log.Warn("solver request failed", "status", resp.StatusCode)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	res, err := ParseResult(data)
	if err != nil {
		log.Warn("solver response invalid", "err", err)
		return nil, err
	}
	log.Info("solver answered", "status", resp.StatusCode, "elapsed", time.Since(start).String())
	return res, nil
}
