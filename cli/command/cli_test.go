package command

import (
	"bytes"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/marathon-release/marathon-release/cliconfig"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

func TestInitialize(t *testing.T) {
	cfg := fs.NewDir(t, "cfg", fs.WithFile(cliconfig.ConfigFileName, "[test]\nmarathon_url = https://marathon.example.com/\n"))
	home := fs.NewDir(t, "home", fs.WithFile(cliconfig.AuthTokensFileName, `{"id_token": "token"}`))

	cli := NewMarathonCli(new(bytes.Buffer), new(bytes.Buffer), &cliflags.ClientOptions{
		ConfigDir:      cfg.Path(),
		AppsDir:        "apps",
		AuthTokensFile: home.Join(cliconfig.AuthTokensFileName),
	})
	assert.NilError(t, cli.Initialize(&cliflags.DomainOptions{Name: "test", TLSVerify: false}))

	assert.Check(t, is.Equal(cli.Domain().Name, "test"))
	assert.Check(t, is.Equal(cli.Domain().Authorization, "Bearer token"))
	assert.Check(t, !cli.Domain().TLSVerify)
	assert.Check(t, is.Equal(cli.AppsDir(), "apps"))
	assert.Assert(t, cli.Client() != nil)
	assert.Check(t, cli.Metrics() != nil)
}

func TestInitializeUnknownDomain(t *testing.T) {
	cfg := fs.NewDir(t, "cfg", fs.WithFile(cliconfig.ConfigFileName, "[test]\nmarathon_url = https://marathon.example.com\n"))

	cli := NewMarathonCli(new(bytes.Buffer), new(bytes.Buffer), &cliflags.ClientOptions{ConfigDir: cfg.Path()})
	err := cli.Initialize(&cliflags.DomainOptions{Name: "prod"})
	assert.Check(t, is.ErrorContains(err, `the domain "prod" does not exist`))
	assert.Check(t, is.ErrorType(err, cerrdefs.IsNotFound))
	assert.Check(t, cli.Client() == nil)
}

func TestInitializeInvalidURL(t *testing.T) {
	cfg := fs.NewDir(t, "cfg", fs.WithFile(cliconfig.ConfigFileName, "[test]\nmarathon_url = marathon.example.com\n"))

	cli := NewMarathonCli(new(bytes.Buffer), new(bytes.Buffer), &cliflags.ClientOptions{ConfigDir: cfg.Path()})
	err := cli.Initialize(&cliflags.DomainOptions{Name: "test"})
	assert.Check(t, is.ErrorContains(err, `invalid configuration for domain "test"`))
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInvalidArgument))
}
