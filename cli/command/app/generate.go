package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/cli"
	"github.com/marathon-release/marathon-release/cli/command"
	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/marathon-release/marathon-release/internal/appstore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// DefaultGenerateDir is the directory definitions are generated in, in a
// sub-directory per domain.
const DefaultGenerateDir = "deployments"

type generateOptions struct {
	domain    cliflags.DomainOptions
	inputDir  string
	outputDir string
}

// NewGenerateCommand creates a new cobra.Command for `marathon-release generate`
func NewGenerateCommand(dockerCli command.Cli) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [OPTIONS]",
		Short: "Generate the application definitions for a domain",
		Long: `Generate the application definitions for a domain from the templates in
the input directory, without contacting Marathon.`,
		Args: cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), dockerCli, &opts)
		},
	}

	flags := cmd.Flags()
	opts.domain.InstallFlags(flags)
	flags.StringVar(&opts.inputDir, "input-directory", "", `Directory with the application templates (default "apps")`)
	flags.StringVar(&opts.outputDir, "output-directory", "", `Directory to generate the definitions in (default "deployments/<domain>")`)
	return cmd
}

func runGenerate(ctx context.Context, dockerCli command.Cli, opts *generateOptions) error {
	inputDir := opts.inputDir
	if inputDir == "" {
		inputDir = dockerCli.AppsDir()
	}
	if err := checkDirectory(inputDir); err != nil {
		return err
	}

	if err := dockerCli.Initialize(&opts.domain); err != nil {
		return err
	}

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = filepath.Join(DefaultGenerateDir, dockerCli.Domain().Name)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", outputDir)
	}

	apps, err := appstore.Load(ctx, inputDir, dockerCli.Domain())
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		log.G(ctx).Infof("no applications defined at %s", inputDir)
		return nil
	}

	log.G(ctx).Infof("generating %d applications to %s", len(apps), outputDir)
	return appstore.Save(ctx, apps, outputDir)
}
