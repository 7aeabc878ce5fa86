package app

import (
	"context"

	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/marathon-release/marathon-release/cli"
	"github.com/marathon-release/marathon-release/cli/command"
	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/marathon-release/marathon-release/internal/appstore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type diffOptions struct {
	domain cliflags.DomainOptions
}

// NewDiffCommand creates a new cobra.Command for `marathon-release diff`
func NewDiffCommand(dockerCli command.Cli) *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff [OPTIONS]",
		Short: "Show the differences between defined and deployed applications",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), dockerCli, &opts)
		},
	}

	opts.domain.InstallFlags(cmd.Flags())
	return cmd
}

// runDiff is a deploy of all applications that changes nothing, and shows
// all changes.
func runDiff(ctx context.Context, dockerCli command.Cli, opts *diffOptions) error {
	if err := dockerCli.Initialize(&opts.domain); err != nil {
		return err
	}

	apps, err := appstore.Load(ctx, dockerCli.AppsDir(), dockerCli.Domain())
	if err != nil {
		return err
	}
	log.G(ctx).Infof("loaded %d applications from %s", len(apps), dockerCli.AppsDir())
	if len(apps) == 0 {
		return errors.New("no applications found to deploy")
	}

	d := &deployer{cli: dockerCli, dryRun: true, verbose: true}
	for _, id := range app.IDs(apps) {
		if err := d.deploy(ctx, apps[id]); err != nil {
			return err
		}
	}
	return nil
}
