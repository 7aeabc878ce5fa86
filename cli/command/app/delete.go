package app

import (
	"context"

	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/marathon-release/marathon-release/cli"
	"github.com/marathon-release/marathon-release/cli/command"
	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/marathon-release/marathon-release/internal/appstore"
	"github.com/marathon-release/marathon-release/internal/metrics"
	"github.com/marathon-release/marathon-release/internal/reconcile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type deleteOptions struct {
	domain cliflags.DomainOptions
	dryRun bool
}

// NewDeleteCommand creates a new cobra.Command for `marathon-release delete`
func NewDeleteCommand(dockerCli command.Cli) *cobra.Command {
	var opts deleteOptions

	cmd := &cobra.Command{
		Use:   "delete [OPTIONS]",
		Short: "Delete all deployed applications that have no definition",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd.Context(), dockerCli, &opts)
		},
	}

	flags := cmd.Flags()
	opts.domain.InstallFlags(flags)
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Show what would be deleted, without deleting")
	return cmd
}

func runDelete(ctx context.Context, dockerCli command.Cli, opts *deleteOptions) error {
	if err := dockerCli.Initialize(&opts.domain); err != nil {
		return err
	}

	defined, err := appstore.Load(ctx, dockerCli.AppsDir(), dockerCli.Domain())
	if err != nil {
		return err
	}
	deployed, err := dockerCli.Client().AppList(ctx)
	if err != nil {
		return errors.Wrapf(err, "could not retrieve applications from %s", dockerCli.Domain().MarathonURL)
	}

	for _, id := range reconcile.Deletions(app.IDs(defined), app.IDs(deployed)) {
		logger := log.G(ctx).WithField("app", id)
		logger.Infof("deleting application %q", id)
		if opts.dryRun {
			dockerCli.Metrics().Inc(metrics.Deleted, true)
			continue
		}
		if err := dockerCli.Client().AppRemove(ctx, id); err != nil {
			logger.WithError(err).Errorf("delete for application %q failed", id)
			dockerCli.Metrics().Inc(metrics.Failed, false)
			continue
		}
		logger.Infof("delete running for application %q", id)
		dockerCli.Metrics().Inc(metrics.Deleted, false)
	}
	return nil
}
