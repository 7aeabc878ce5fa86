// Package commands registers the commands of the CLI.
package commands

import (
	"github.com/marathon-release/marathon-release/cli/command"
	"github.com/marathon-release/marathon-release/cli/command/app"
	"github.com/spf13/cobra"
)

// AddCommands adds all the commands from cli/command to the root command
func AddCommands(cmd *cobra.Command, dockerCli command.Cli) {
	cmd.AddCommand(app.NewAppCommands(dockerCli)...)
}
