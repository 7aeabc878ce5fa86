// Package command holds the state shared by the commands of the CLI.
package command

import (
	"io"

	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/marathon-release/marathon-release/cliconfig"
	"github.com/marathon-release/marathon-release/client"
	"github.com/marathon-release/marathon-release/internal/metrics"
	"github.com/pkg/errors"
)

// Cli represents the marathon-release command line client.
type Cli interface {
	Client() client.APIClient
	Out() io.Writer
	Err() io.Writer
	Domain() *cliconfig.Domain
	AppsDir() string
	Metrics() *metrics.Recorder
	Initialize(opts *cliflags.DomainOptions) error
}

// MarathonCli is an instance of the marathon-release command line client.
// Instances of the client can be returned from NewMarathonCli.
type MarathonCli struct {
	out     io.Writer
	err     io.Writer
	options *cliflags.ClientOptions
	client  client.APIClient
	domain  *cliconfig.Domain
	metrics *metrics.Recorder
}

// NewMarathonCli returns a MarathonCli instance with the given output
// streams. The options are read when the CLI is initialized, after the
// flags are parsed.
func NewMarathonCli(out, err io.Writer, opts *cliflags.ClientOptions) *MarathonCli {
	return &MarathonCli{
		out:     out,
		err:     err,
		options: opts,
		metrics: metrics.New(),
	}
}

// Client returns the APIClient
func (cli *MarathonCli) Client() client.APIClient {
	return cli.client
}

// Out returns the writer used for stdout
func (cli *MarathonCli) Out() io.Writer {
	return cli.out
}

// Err returns the writer used for stderr
func (cli *MarathonCli) Err() io.Writer {
	return cli.err
}

// Domain returns the configuration of the selected domain.
func (cli *MarathonCli) Domain() *cliconfig.Domain {
	return cli.domain
}

// AppsDir returns the directory holding the application templates.
func (cli *MarathonCli) AppsDir() string {
	return cli.options.AppsDir
}

// Metrics returns the recorder for the metrics of the run.
func (cli *MarathonCli) Metrics() *metrics.Recorder {
	return cli.metrics
}

// Initialize loads the configuration of the selected domain and creates
// the API client for it. No request is sent.
func (cli *MarathonCli) Initialize(opts *cliflags.DomainOptions) error {
	domain, err := cliconfig.Load(cli.options.ConfigDir, opts.Name)
	if err != nil {
		return err
	}
	domain.TLSVerify = opts.TLSVerify

	domain.Authorization, err = cliconfig.LoadAuthorization(cli.options.AuthTokensFile)
	if err != nil {
		return err
	}

	apiClient, err := NewAPIClientFromDomain(domain)
	if err != nil {
		return errors.Wrapf(err, "invalid configuration for domain %q", domain.Name)
	}
	cli.domain = domain
	cli.client = apiClient
	return nil
}

// NewAPIClientFromDomain creates a client for the Marathon endpoint of the
// domain.
func NewAPIClientFromDomain(domain *cliconfig.Domain) (client.APIClient, error) {
	return client.NewClientWithOpts(
		client.WithHost(domain.MarathonURL),
		client.WithAuthorization(domain.Authorization),
		client.WithTLSVerify(domain.TLSVerify),
	)
}
