package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SetupRootCommand sets default usage, help, and error handling for the
// root command.
func SetupRootCommand(rootCmd *cobra.Command) {
	rootCmd.SetFlagErrorFunc(FlagErrorFunc)
	rootCmd.PersistentFlags().BoolP("help", "h", false, "Print usage")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// FlagErrorFunc prints an error message which matches the format of the
// marathon-release CLI, and returns a StatusError with exit status 2, the
// status for usage errors.
func FlagErrorFunc(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	usage := ""
	if cmd.HasSubCommands() {
		usage = "\n\n" + cmd.UsageString()
	}
	return StatusError{
		Status:     fmt.Sprintf("%s\nSee '%s --help'.%s", err, cmd.CommandPath(), usage),
		StatusCode: 2,
	}
}
