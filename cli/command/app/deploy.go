package app

import (
	"context"
	"strings"

	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/marathon-release/marathon-release/cli/command"
	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/marathon-release/marathon-release/internal/appstore"
	"github.com/marathon-release/marathon-release/internal/metrics"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type deployOptions struct {
	domain  cliflags.DomainOptions
	dryRun  bool
	verbose bool
	all     bool

	apps []string
}

// NewDeployCommand creates a new cobra.Command for `marathon-release deploy`
func NewDeployCommand(dockerCli command.Cli) *cobra.Command {
	var opts deployOptions

	cmd := &cobra.Command{
		Use:   "deploy [OPTIONS] [APPLICATION...]",
		Short: "Deploy selected or all application definitions to a domain",
		Long: `Deploy selected or all application definitions to a domain.

The definitions are rendered from the templates in the applications
directory. The Marathon URL of the domain is read from the domain
configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.apps = args
			return runDeploy(cmd.Context(), dockerCli, &opts)
		},
	}

	flags := cmd.Flags()
	opts.domain.InstallFlags(flags)
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Show what would be deployed, without deploying")
	flags.BoolVar(&opts.verbose, "verbose", false, "Show the changes that are applied")
	flags.BoolVar(&opts.all, "all-applications", false, "Deploy all applications")
	return cmd
}

func runDeploy(ctx context.Context, dockerCli command.Cli, opts *deployOptions) error {
	if err := dockerCli.Initialize(&opts.domain); err != nil {
		return err
	}

	apps, err := appstore.Load(ctx, dockerCli.AppsDir(), dockerCli.Domain())
	if err != nil {
		return err
	}
	log.G(ctx).Infof("loaded %d applications defined in %s", len(apps), dockerCli.AppsDir())

	ids := make([]string, 0, len(opts.apps))
	for _, id := range opts.apps {
		if !strings.HasPrefix(id, "/") {
			id = "/" + id
		}
		ids = append(ids, id)
	}
	if opts.all {
		ids = app.IDs(apps)
	}
	if len(ids) == 0 {
		return errors.New("no applications to deploy, specify specific ones or use --all-applications")
	}

	d := &deployer{cli: dockerCli, dryRun: opts.dryRun, verbose: opts.verbose}
	for _, id := range ids {
		def, ok := apps[id]
		if !ok {
			log.G(ctx).Warnf("No application %q found", id)
			dockerCli.Metrics().Inc(metrics.Skipped, opts.dryRun)
			continue
		}
		if err := d.deploy(ctx, def); err != nil {
			return err
		}
	}
	return nil
}
