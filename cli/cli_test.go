package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestNoArgs(t *testing.T) {
	cmd := &cobra.Command{
		Use:   "diff [OPTIONS]",
		Short: "Show differences",
		Args:  NoArgs,
		RunE:  func(*cobra.Command, []string) error { return nil },
	}

	cmd.SetArgs([]string{})
	assert.NilError(t, cmd.Execute())

	cmd.SetArgs([]string{"extra"})
	err := cmd.Execute()
	assert.Check(t, is.ErrorContains(err, `"diff" accepts no arguments.`))
	assert.Check(t, is.ErrorContains(err, "See 'diff --help'."))
}

func TestFlagErrorFunc(t *testing.T) {
	cmd := &cobra.Command{Use: "deploy"}

	assert.NilError(t, FlagErrorFunc(cmd, nil))

	err := FlagErrorFunc(cmd, errors.New("unknown flag: --foo"))
	var statusErr StatusError
	assert.Assert(t, errors.As(err, &statusErr))
	assert.Check(t, is.Equal(statusErr.StatusCode, 2))
	assert.Check(t, is.Equal(statusErr.Status, "unknown flag: --foo\nSee 'deploy --help'."))
}
