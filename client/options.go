package client

import (
	"net/http"
	"net/url"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/pkg/errors"
)

// Opt is a configuration option to initialize a [Client].
type Opt func(*Client) error

// WithHost sets the base URL of the Marathon API, for example
// "https://marathon.example.com" or "http://localhost/service/marathon".
func WithHost(host string) Opt {
	return func(c *Client) error {
		u, err := url.Parse(strings.TrimSpace(host))
		if err != nil {
			return errors.Wrapf(cerrdefs.ErrInvalidArgument, "invalid Marathon URL %q: %v", host, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.Wrapf(cerrdefs.ErrInvalidArgument, "invalid Marathon URL %q: scheme must be http or https", host)
		}
		if u.Host == "" {
			return errors.Wrapf(cerrdefs.ErrInvalidArgument, "invalid Marathon URL %q: no host", host)
		}
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawQuery = ""
		u.Fragment = ""
		c.host = u
		return nil
	}
}

// WithHTTPClient overrides the client's HTTP client with the specified one.
func WithHTTPClient(client *http.Client) Opt {
	return func(c *Client) error {
		if client != nil {
			c.client = client
		}
		return nil
	}
}

// WithAuthorization sets the Authorization header sent with every request,
// for example "Bearer <token>". An empty value sends no header.
func WithAuthorization(value string) Opt {
	return func(c *Client) error {
		c.authorization = value
		return nil
	}
}

// WithTLSVerify enables or disables verification of the server certificate.
// It only applies to the default HTTP client.
func WithTLSVerify(verify bool) Opt {
	return func(c *Client) error {
		c.tlsVerify = verify
		return nil
	}
}

// WithUserAgent configures the User-Agent header to use for HTTP requests.
// An empty value removes the header.
func WithUserAgent(ua string) Opt {
	return func(c *Client) error {
		c.userAgent = &ua
		return nil
	}
}

// WithHTTPHeaders appends custom HTTP headers to the client's default
// headers.
func WithHTTPHeaders(headers map[string]string) Opt {
	return func(c *Client) error {
		if c.customHTTPHeaders == nil {
			c.customHTTPHeaders = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.customHTTPHeaders[k] = v
		}
		return nil
	}
}
