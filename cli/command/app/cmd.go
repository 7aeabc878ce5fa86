// Package app implements the commands that manage the applications of a
// domain.
package app

import (
	"github.com/marathon-release/marathon-release/cli/command"
	"github.com/spf13/cobra"
)

// NewAppCommands returns the commands that manage applications.
func NewAppCommands(dockerCli command.Cli) []*cobra.Command {
	return []*cobra.Command{
		NewDeployCommand(dockerCli),
		NewDiffCommand(dockerCli),
		NewDownloadCommand(dockerCli),
		NewDeleteCommand(dockerCli),
		NewGenerateCommand(dockerCli),
	}
}
