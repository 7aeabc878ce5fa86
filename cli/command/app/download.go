package app

import (
	"context"
	"os"
	"path/filepath"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/cli"
	"github.com/marathon-release/marathon-release/cli/command"
	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/marathon-release/marathon-release/internal/appstore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// DefaultDownloadDir is the directory definitions are downloaded to, in a
// sub-directory per domain.
const DefaultDownloadDir = "current"

type downloadOptions struct {
	domain    cliflags.DomainOptions
	directory string
}

// NewDownloadCommand creates a new cobra.Command for `marathon-release download`
func NewDownloadCommand(dockerCli command.Cli) *cobra.Command {
	var opts downloadOptions

	cmd := &cobra.Command{
		Use:   "download [OPTIONS]",
		Short: "Save the definitions of all deployed applications",
		Long: `Save the definitions of all applications deployed on the Marathon of a
domain to a directory, one file per application.`,
		Args: cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd.Context(), dockerCli, &opts)
		},
	}

	flags := cmd.Flags()
	opts.domain.InstallFlags(flags)
	flags.StringVar(&opts.directory, "directory", "", `Existing directory to save the definitions in (default "current/<domain>")`)
	return cmd
}

func runDownload(ctx context.Context, dockerCli command.Cli, opts *downloadOptions) error {
	directory := opts.directory
	if directory != "" {
		if err := checkDirectory(directory); err != nil {
			return err
		}
	}

	if err := dockerCli.Initialize(&opts.domain); err != nil {
		return err
	}
	if directory == "" {
		directory = filepath.Join(DefaultDownloadDir, dockerCli.Domain().Name)
	}

	marathonURL := dockerCli.Domain().MarathonURL
	apps, err := dockerCli.Client().AppList(ctx)
	if err != nil {
		return errors.Wrapf(err, "could not retrieve applications from %s", marathonURL)
	}
	if len(apps) == 0 {
		log.G(ctx).Warnf("no applications deployed at %s", marathonURL)
		return nil
	}

	log.G(ctx).Infof("saving %d applications to %s", len(apps), directory)
	return appstore.Save(ctx, apps, directory)
}

type invalidDirectoryError struct {
	error
}

func (invalidDirectoryError) InvalidParameter() {}

// checkDirectory returns an error if dir is not an existing directory.
func checkDirectory(dir string) error {
	fi, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return errors.Wrapf(cerrdefs.ErrNotFound, "directory %q does not exist", dir)
	case err != nil:
		return err
	case !fi.IsDir():
		return invalidDirectoryError{errors.Errorf("directory %q is a file", dir)}
	}
	return nil
}
