package app

import (
	"strings"
	"testing"

	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/marathon-release/marathon-release/cli/internal/test"
	"github.com/marathon-release/marathon-release/cliconfig"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

const testDomainConfig = `
[DEFAULT]
release = 1.0

[test]
marathon_url = http://marathon.test
`

// newTestCli returns a FakeCli for the "test" domain, with the templates
// of applications /a and /b.
func newTestCli(t *testing.T, apiClient *fakeClient) *test.FakeCli {
	t.Helper()
	cfg := fs.NewDir(t, "cfg", fs.WithFile(cliconfig.ConfigFileName, testDomainConfig))
	apps := fs.NewDir(t, "apps",
		fs.WithFile("a.json", `{"id": "/a", "env": {"RELEASE": "{{ release }}"}}`),
		fs.WithFile("a.cfg", "[test]\nrelease = 1.1\n"),
		fs.WithFile("b.json", `{"id": "/b", "cmd": "sleep 1000", "instances": 1}`),
	)
	return test.NewFakeCli(apiClient, test.WithConfigDir(cfg.Path()), test.WithAppsDir(apps.Path()))
}

func definition(t *testing.T, doc string) app.Definition {
	t.Helper()
	def, err := app.Decode(strings.NewReader(doc))
	assert.NilError(t, err)
	return def
}
