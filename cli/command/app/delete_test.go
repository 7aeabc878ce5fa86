package app

import (
	"errors"
	"io"
	"testing"

	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/marathon-release/marathon-release/internal/metrics"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func deployedApps(t *testing.T) func() (map[string]app.Definition, error) {
	return func() (map[string]app.Definition, error) {
		return map[string]app.Definition{
			"/a":       definition(t, `{"id": "/a"}`),
			"/c":       definition(t, `{"id": "/c"}`),
			"/group/d": definition(t, `{"id": "/group/d"}`),
		}, nil
	}
}

func TestDelete(t *testing.T) {
	var removed []string
	cli := newTestCli(t, &fakeClient{
		appListFunc: deployedApps(t),
		appRemoveFunc: func(id string) error {
			removed = append(removed, id)
			if id == "/c" {
				return errors.New("App is locked by one or more deployments.")
			}
			return nil
		},
	})
	cmd := NewDeleteCommand(cli)
	cmd.SetArgs([]string{"--domain-name", "test"})
	assert.NilError(t, cmd.Execute())

	assert.Check(t, is.DeepEqual(removed, []string{"/c", "/group/d"}))
	assert.Check(t, is.Equal(appsCount(t, cli, metrics.Deleted, false), 1.0))
	assert.Check(t, is.Equal(appsCount(t, cli, metrics.Failed, false), 1.0))
}

func TestDeleteDryRun(t *testing.T) {
	cli := newTestCli(t, &fakeClient{
		appListFunc: deployedApps(t),
		appRemoveFunc: func(id string) error {
			return errors.New("unexpected remove")
		},
	})
	cmd := NewDeleteCommand(cli)
	cmd.SetArgs([]string{"--domain-name", "test", "--dry-run"})
	assert.NilError(t, cmd.Execute())

	assert.Check(t, is.Equal(appsCount(t, cli, metrics.Deleted, true), 2.0))
}

func TestDeleteNothingDeployed(t *testing.T) {
	cli := newTestCli(t, &fakeClient{
		appRemoveFunc: func(id string) error {
			return errors.New("unexpected remove")
		},
	})
	cmd := NewDeleteCommand(cli)
	cmd.SetArgs([]string{"--domain-name", "test"})
	assert.NilError(t, cmd.Execute())
}

func TestDeleteErrors(t *testing.T) {
	testCases := []struct {
		name          string
		args          []string
		listErr       error
		expectedError string
	}{
		{
			name:          "no-domain",
			args:          []string{"--dry-run"},
			expectedError: `required flag(s) "domain-name" not set`,
		},
		{
			name:          "verbose-is-not-a-flag",
			args:          []string{"--domain-name", "test", "--verbose"},
			expectedError: "unknown flag: --verbose",
		},
		{
			name:          "list-error",
			args:          []string{"--domain-name", "test"},
			listErr:       errors.New("error during connect"),
			expectedError: "could not retrieve applications from http://marathon.test: error during connect",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := NewDeleteCommand(newTestCli(t, &fakeClient{
				appListFunc: func() (map[string]app.Definition, error) {
					return nil, tc.listErr
				},
			}))
			cmd.SetArgs(tc.args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			assert.ErrorContains(t, cmd.Execute(), tc.expectedError)
		})
	}
}
