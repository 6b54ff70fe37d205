// Package shop is a read-only client for the storefront API with host failover
package shop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/logger"
	pnet "minishop/internal/platform/net"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "minishop-gate"
	maxBody        = 4 << 20
)

// Options configures the Client
type Options struct {
	// Hosts are base URLs tried in order, the first is primary
	Hosts     []string
	PublicKey string
	SecretKey string
	UserAgent string

	// Timeout bounds each host attempt
	Timeout time.Duration

	// HTTPClient overrides the transport, mostly for tests
	HTTPClient *http.Client
}

// Client talks to the shop API, falling back across hosts
type Client struct {
	http  *http.Client
	opts  Options
	hosts []string
	log   logger.Logger
}

// errNotFound marks a 404 from a host that answered
var errNotFound = errors.New("shop: not found")

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	var hosts []string
	for _, h := range o.Hosts {
		if h = strings.TrimRight(strings.TrimSpace(h), "/"); h != "" {
			hosts = append(hosts, h)
		}
	}
	return &Client{
		http:  hc,
		opts:  o,
		hosts: hosts,
		log:   *logger.Named("shop"),
	}
}

// Hosts returns the normalized host list in attempt order
func (c *Client) Hosts() []string { return append([]string(nil), c.hosts...) }

// post sends form to path on each host until one answers
// with missingOK a 404 returns errNotFound without trying further hosts,
// otherwise the host is treated as misrouted and the next one is tried
func (c *Client) post(ctx context.Context, path string, form url.Values, missingOK bool) ([]byte, error) {
	if len(c.hosts) == 0 {
		return nil, perr.Unavailablef("shop: no hosts configured")
	}
	body := c.sign(form).Encode()
	reqID := pnet.RequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}

	var lastErr error
	for i, host := range c.hosts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, retry, err := c.attempt(ctx, host+path, body, reqID)
		if err == nil {
			if i > 0 {
				c.log.Info().Str("host", host).Str("path", path).Int("attempt", i).Msg("shop fallback host answered")
			}
			return b, nil
		}
		if errors.Is(err, errNotFound) {
			if missingOK {
				return nil, err
			}
			retry = true
		}
		if !retry {
			return nil, err
		}
		lastErr = err
		c.log.Warn().Err(err).Str("host", host).Str("path", path).Int("attempt", i).Msg("shop host failed")
	}
	return nil, perr.Wrapf(lastErr, perr.ErrorCodeUnavailable, "shop unavailable after %d hosts", len(c.hosts))
}

// attempt makes one bounded call. retry reports whether the next host should be tried
func (c *Client) attempt(ctx context.Context, target, body, reqID string) ([]byte, bool, error) {
	actx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, http.MethodPost, target, strings.NewReader(body))
	if err != nil {
		return nil, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "shop new request failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		// parent cancellation is terminal, per-attempt deadline is not
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("target", target).Msg("shop close body failed")
		}
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			if ctx.Err() != nil {
				return nil, false, ctx.Err()
			}
			return nil, true, err
		}
		return b, false, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, errNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("shop status %d", resp.StatusCode)
	default:
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, false, perr.Newf(perr.ErrorCodeUnknown, "shop unexpected status %d body %s", resp.StatusCode, string(tail))
	}
}

// sign adds the credential pair to form
func (c *Client) sign(form url.Values) url.Values {
	out := url.Values{}
	for k, v := range form {
		out[k] = v
	}
	out.Set("public_key", c.opts.PublicKey)
	out.Set("secret_key", c.opts.SecretKey)
	return out
}
