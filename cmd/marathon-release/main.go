package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/cli"
	"github.com/marathon-release/marathon-release/cli/command"
	"github.com/marathon-release/marathon-release/cli/command/commands"
	cliflags "github.com/marathon-release/marathon-release/cli/flags"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func newMarathonReleaseCommand(marathonCli *command.MarathonCli, opts *cliflags.ClientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marathon-release [OPTIONS] COMMAND",
		Short: "Deploy application definitions to Marathon",
		Long: `Deploy application definitions to Marathon.

Application definitions are rendered from the templates in ./apps, with the
values of the domain in ./cfg/domain.cfg.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.SetLogLevel()
		},
	}
	cli.SetupRootCommand(cmd)

	opts.InstallFlags(cmd.PersistentFlags())
	commands.AddCommands(cmd, marathonCli)
	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return fmt.Errorf(
		"marathon-release: '%s' is not a marathon-release command.\nSee 'marathon-release --help'", args[0])
}

func runMarathonRelease(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts := cliflags.NewClientOptions()
	marathonCli := command.NewMarathonCli(stdout, stderr, opts)
	cmd := newMarathonReleaseCommand(marathonCli, opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if opts.MetricsFile != "" {
		if mErr := marathonCli.Metrics().WriteFile(opts.MetricsFile); mErr != nil {
			log.G(ctx).WithError(mErr).Warn("failed to write metrics")
		}
	}
	return err
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logrus.SetOutput(os.Stderr)

	if tp, err := getTracerProvider(ctx, os.Getenv); err != nil {
		if !errors.Is(err, errTracingDisabled) {
			log.G(ctx).WithError(err).Warn("Failed to initialize tracing, skipping")
		}
	} else {
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.TraceContext{})
		defer func() {
			_ = tp.Shutdown(context.WithoutCancel(ctx))
		}()
	}

	err := runMarathonRelease(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	if err != nil {
		code := 1
		var sterr cli.StatusError
		if errors.As(err, &sterr) {
			if sterr.Status != "" {
				fmt.Fprintln(os.Stderr, sterr.Status)
			}
			// StatusError should only be used for errors, and all errors should
			// have a non-zero exit status, so never exit with 0
			if sterr.StatusCode != 0 {
				code = sterr.StatusCode
			}
		} else {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
		}
		os.Exit(code)
	}
}
