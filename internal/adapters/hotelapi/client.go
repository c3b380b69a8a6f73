// internal/adapters/hotelapi/client.go
package hotelapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotelhub/internal/adapters/observability"
	"hotelhub/internal/domain"
)

const (
	serviceLabel = "hotelhub-api"
	maxErrorBody = 64 << 10
)

// Client is the single configured request client of the console. Every call
// carries the stored bearer token; failures come back as *domain.APIError.
// There is no retry and no backoff.
type Client struct {
	base   string
	hc     *http.Client
	tokens domain.TokenStore
	rl     *rate.Limiter
	ua     string
}

type Option func(*Client)

// WithTimeout sets a whole-request timeout. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithRateLimit enables client-side rate limiting; rps <= 0 disables it.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.rl = rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

func New(base string, tokens domain.TokenStore, opts ...Option) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}
	c := &Client{
		base:   strings.TrimRight(base, "/"),
		hc:     &http.Client{},
		tokens: tokens,
		ua:     "hotelhub-console/1.0",
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// doJSON sends an optional JSON body and decodes the response into out (when non-nil).
// route is the path template used as the metrics label.
func (c *Client) doJSON(ctx context.Context, method, route, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, route, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(ctx, req, route, out)
}

// doMultipart posts f as the "file" field of a multipart form.
func (c *Client) doMultipart(ctx context.Context, route, path string, f domain.Upload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", f.Filename)
	if err != nil {
		return err
	}
	if _, err := fw.Write(f.Content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(ctx, req, route, out)
}

func (c *Client) send(ctx context.Context, req *http.Request, route string, out any) error {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return &domain.APIError{Kind: domain.KindTransport, Message: "request aborted", Err: err}
		}
	}

	token, err := c.tokens.Get(ctx)
	if err != nil {
		// an unreadable store behaves like an empty one
		log.Warn().Err(err).Msg("token store read failed")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(serviceLabel, route, 0, time.Since(start))
		if ctx.Err() != nil {
			return &domain.APIError{Kind: domain.KindTransport, Message: "request aborted", Err: ctx.Err()}
		}
		log.Debug().Err(err).Str("err_type", observability.LabelErr(err)).Str("route", route).Msg("no response from backend")
		return &domain.APIError{Kind: domain.KindTransport, Message: "no response from server", Err: domain.ErrNoResponse}
	}
	defer resp.Body.Close()
	observability.ObserveExternal(serviceLabel, route, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return &domain.APIError{Kind: domain.KindTransport, Status: resp.StatusCode, Message: "no response from server", Err: err}
		}
		if len(bytes.TrimSpace(b)) == 0 {
			return nil
		}
		if err := json.Unmarshal(b, out); err != nil {
			return &domain.APIError{Kind: domain.KindServer, Status: resp.StatusCode, Message: domain.GenericErrorMessage, Err: err}
		}
		return nil
	}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return decodeError(resp.StatusCode, b)
}

type errorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Errors  any             `json:"errors"`
}

// decodeError maps a non-2xx response onto the three-way error taxonomy.
func decodeError(status int, b []byte) error {
	ae := &domain.APIError{Status: status, Err: sentinelFor(status)}

	var eb errorBody
	if status >= 500 || json.Unmarshal(b, &eb) != nil {
		ae.Kind = domain.KindServer
		ae.Message = domain.GenericErrorMessage
		return ae
	}

	ae.Kind = domain.KindRejected
	ae.Message = eb.Message
	ae.Errors = eb.Errors
	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			if ae.Message == "" {
				ae.Message = s
			}
		} else {
			var structured any
			if err := json.Unmarshal(eb.Detail, &structured); err == nil && ae.Errors == nil {
				ae.Errors = structured
			}
		}
	}
	if ae.Message == "" {
		ae.Message = strings.ToLower(http.StatusText(status))
	}
	return ae
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// IsAborted reports whether err stems from a cancelled request context.
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
