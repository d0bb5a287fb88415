package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// TokenSource supplies the bearer token attached to outgoing requests. An
// empty string means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Options configures a Client.
type Options struct {
	// Timeout applies to every call except video analysis. Zero means 30s.
	Timeout time.Duration
	// VideoTimeout covers the long-running video analysis job. Zero means 3m.
	VideoTimeout time.Duration
	// Tokens is consulted before every request. May be nil.
	Tokens TokenSource
	// OnUnauthorized fires once per 401 response, after the body is read.
	// The session layer registers its invalidation here.
	OnUnauthorized func()
	Logger         *zap.Logger
}

// Client is the single point of egress to the ChickHealth backend. It does
// no retries, no caching and no request queuing.
type Client struct {
	origin string
	std    *resty.Client
	long   *resty.Client
	log    *zap.Logger
}

func New(origin string, opts Options) *Client {
	origin = strings.TrimRight(origin, "/")
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.VideoTimeout == 0 {
		opts.VideoTimeout = 3 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	c := &Client{
		origin: origin,
		std:    newResty(origin, opts.Timeout, opts),
		long:   newResty(origin, opts.VideoTimeout, opts),
		log:    opts.Logger,
	}
	return c
}

func newResty(origin string, timeout time.Duration, opts Options) *resty.Client {
	client := resty.New().
		SetBaseURL(origin + apiPrefix).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if opts.Tokens != nil {
			if token := opts.Tokens.Token(); token != "" {
				req.SetHeader("Authorization", "Bearer "+token)
			}
		}
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized && opts.OnUnauthorized != nil {
			opts.OnUnauthorized()
		}
		return nil
	})
	return client
}

// Origin returns the backend origin without the API prefix.
func (c *Client) Origin() string {
	return c.origin
}

// ResolveAsset turns an origin-relative asset path (image_url, gif_url) into
// an absolute URL. Absolute inputs pass through unchanged.
func (c *Client) ResolveAsset(rel string) string {
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return c.origin + rel
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.execute(ctx, c.std, http.MethodGet, path, func(req *resty.Request) {}, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.execute(ctx, c.std, http.MethodPost, path, func(req *resty.Request) {
		req.SetBody(body)
	}, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	return c.execute(ctx, c.std, http.MethodPut, path, func(req *resty.Request) {
		req.SetBody(body)
	}, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.execute(ctx, c.std, http.MethodDelete, path, func(req *resty.Request) {}, nil)
}

func (c *Client) postForm(ctx context.Context, path string, form map[string]string, out any) error {
	return c.execute(ctx, c.std, http.MethodPost, path, func(req *resty.Request) {
		req.SetFormData(form)
	}, out)
}

func (c *Client) upload(ctx context.Context, rc *resty.Client, path, filename string, file io.Reader, out any) error {
	return c.execute(ctx, rc, http.MethodPost, path, func(req *resty.Request) {
		req.SetFileReader("file", filename, file)
	}, out)
}

func (c *Client) execute(ctx context.Context, rc *resty.Client, method, path string, build func(*resty.Request), out any) error {
	var body errorBody
	req := rc.R().
		SetContext(ctx).
		SetError(&body)
	if out != nil {
		req.SetResult(out)
	}
	build(req)

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.IsError() {
		return &Error{Status: resp.StatusCode(), Detail: body.Detail}
	}
	return nil
}
