/*
Package client is a Go client for the Marathon application API.

Each operation maps to a single request on the /v2/apps endpoint. No
operation retries: a failed request is returned to the caller, which decides
whether the failure is fatal.

Create a client for a Marathon endpoint and list the deployed applications:

	cli, err := client.NewClientWithOpts(
		client.WithHost("https://marathon.example.com"),
		client.WithAuthorization("Bearer "+token),
	)
	if err != nil {
		return err
	}
	apps, err := cli.AppList(ctx)
*/
package client

import (
	"net/http"
	"net/url"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/go-connections/tlsconfig"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "marathon-release"

// Client is the API client that performs all operations against a Marathon
// server.
type Client struct {
	// host is the base URL of the Marathon API, which may include a path
	// prefix when Marathon is served behind a proxy.
	host *url.URL
	// client used to send and receive http requests.
	client *http.Client
	// authorization is the value of the Authorization header, if any.
	authorization string
	// customHTTPHeaders are set on every request.
	customHTTPHeaders map[string]string
	// userAgent is the User-Agent header. A nil value uses DefaultUserAgent,
	// an empty value removes the header.
	userAgent *string
	// tlsVerify controls server certificate verification for the default
	// http client. It has no effect when WithHTTPClient is used.
	tlsVerify bool
}

// NewClientWithOpts initializes a new API client with the given options.
// [WithHost] is required.
func NewClientWithOpts(ops ...Opt) (*Client, error) {
	c := &Client{
		tlsVerify: true,
	}
	for _, op := range ops {
		if err := op(c); err != nil {
			return nil, err
		}
	}
	if c.host == nil {
		return nil, errors.Wrap(cerrdefs.ErrInvalidArgument, "no Marathon URL configured")
	}
	if c.client == nil {
		hc, err := defaultHTTPClient(c.tlsVerify)
		if err != nil {
			return nil, err
		}
		c.client = hc
	}
	return c, nil
}

func defaultHTTPClient(tlsVerify bool) (*http.Client, error) {
	tlsConfig, err := tlsconfig.Client(tlsconfig.Options{
		InsecureSkipVerify: !tlsVerify,
	})
	if err != nil {
		return nil, err
	}
	transport := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsConfig,
	}
	return &http.Client{
		Transport: otelhttp.NewTransport(transport),
	}, nil
}

// Host returns the base URL of the Marathon API.
func (cli *Client) Host() string {
	return cli.host.String()
}

// HTTPClient returns a copy of the HTTP client bound to the server.
func (cli *Client) HTTPClient() *http.Client {
	c := *cli.client
	return &c
}
