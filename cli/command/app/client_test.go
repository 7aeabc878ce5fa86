package app

import (
	"context"
	"strconv"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/marathon-release/marathon-release/cli/internal/test"
	"github.com/marathon-release/marathon-release/internal/metrics"
	"gotest.tools/v3/assert"
)

type fakeClient struct {
	appInspectFunc func(string) (app.Definition, error)
	appListFunc    func() (map[string]app.Definition, error)
	appCreateFunc  func(app.Definition) error
	appUpdateFunc  func(string, app.Definition) error
	appRemoveFunc  func(string) error
}

func (c *fakeClient) Host() string {
	return "http://marathon.test"
}

func (c *fakeClient) AppInspect(_ context.Context, id string) (app.Definition, error) {
	if c.appInspectFunc != nil {
		return c.appInspectFunc(id)
	}
	return nil, cerrdefs.ErrNotFound
}

func (c *fakeClient) AppList(context.Context) (map[string]app.Definition, error) {
	if c.appListFunc != nil {
		return c.appListFunc()
	}
	return map[string]app.Definition{}, nil
}

func (c *fakeClient) AppCreate(_ context.Context, def app.Definition) error {
	if c.appCreateFunc != nil {
		return c.appCreateFunc(def)
	}
	return nil
}

func (c *fakeClient) AppUpdate(_ context.Context, id string, def app.Definition) error {
	if c.appUpdateFunc != nil {
		return c.appUpdateFunc(id, def)
	}
	return nil
}

func (c *fakeClient) AppRemove(_ context.Context, id string) error {
	if c.appRemoveFunc != nil {
		return c.appRemoveFunc(id)
	}
	return nil
}

// appsCount returns the number of applications the run counted with the
// given outcome.
func appsCount(t *testing.T, cli *test.FakeCli, action metrics.Action, dryRun bool) float64 {
	t.Helper()
	families, err := cli.Metrics().Gatherer().Gather()
	assert.NilError(t, err)
	for _, mf := range families {
		if mf.GetName() != "marathon_release_apps_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["action"] == string(action) && labels["dry_run"] == strconv.FormatBool(dryRun) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
