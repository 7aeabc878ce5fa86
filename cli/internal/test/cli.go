// Package test provides a fake implementation of the command.Cli interface
// for testing commands.
package test

import (
	"bytes"
	"io"

	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/marathon-release/marathon-release/cliconfig"
	"github.com/marathon-release/marathon-release/client"
	"github.com/marathon-release/marathon-release/internal/metrics"
)

// FakeCli emulates the default MarathonCli
type FakeCli struct {
	client    client.APIClient
	outBuffer *bytes.Buffer
	errBuffer *bytes.Buffer
	configDir string
	appsDir   string
	domain    *cliconfig.Domain
	metrics   *metrics.Recorder
	initErr   error

	// DomainOptions are the options the CLI was last initialized with.
	DomainOptions *cliflags.DomainOptions
}

// CliOption modifies a FakeCli.
type CliOption func(*FakeCli)

// WithConfigDir sets the directory the domain configuration is loaded from
// when the CLI is initialized.
func WithConfigDir(dir string) CliOption {
	return func(c *FakeCli) {
		c.configDir = dir
	}
}

// WithAppsDir sets the directory holding the application templates.
func WithAppsDir(dir string) CliOption {
	return func(c *FakeCli) {
		c.appsDir = dir
	}
}

// WithInitializeError makes Initialize fail with err.
func WithInitializeError(err error) CliOption {
	return func(c *FakeCli) {
		c.initErr = err
	}
}

// NewFakeCli returns a fake for the command.Cli interface
func NewFakeCli(apiClient client.APIClient, opts ...CliOption) *FakeCli {
	c := &FakeCli{
		client:    apiClient,
		outBuffer: new(bytes.Buffer),
		errBuffer: new(bytes.Buffer),
		appsDir:   cliflags.DefaultAppsDir,
		metrics:   metrics.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client returns a client for interacting with Marathon
func (c *FakeCli) Client() client.APIClient {
	return c.client
}

// Out returns the output stream (stdout) the cli should write on
func (c *FakeCli) Out() io.Writer {
	return c.outBuffer
}

// Err returns the output stream (stderr) the cli should write on
func (c *FakeCli) Err() io.Writer {
	return c.errBuffer
}

// OutBuffer returns the stdout buffer
func (c *FakeCli) OutBuffer() *bytes.Buffer {
	return c.outBuffer
}

// ErrBuffer returns the stderr buffer
func (c *FakeCli) ErrBuffer() *bytes.Buffer {
	return c.errBuffer
}

// Domain returns the domain the CLI was initialized for.
func (c *FakeCli) Domain() *cliconfig.Domain {
	return c.domain
}

// AppsDir returns the directory holding the application templates.
func (c *FakeCli) AppsDir() string {
	return c.appsDir
}

// Metrics returns the recorder for the metrics of the run.
func (c *FakeCli) Metrics() *metrics.Recorder {
	return c.metrics
}

// Initialize loads the domain from the configuration directory, if one was
// set, but keeps the fake client.
func (c *FakeCli) Initialize(opts *cliflags.DomainOptions) error {
	c.DomainOptions = opts
	if c.initErr != nil {
		return c.initErr
	}
	if c.configDir == "" {
		c.domain = &cliconfig.Domain{
			Name:        opts.Name,
			MarathonURL: "http://marathon.test",
			TLSVerify:   opts.TLSVerify,
		}
		return nil
	}
	domain, err := cliconfig.Load(c.configDir, opts.Name)
	if err != nil {
		return err
	}
	domain.TLSVerify = opts.TLSVerify
	c.domain = domain
	return nil
}
