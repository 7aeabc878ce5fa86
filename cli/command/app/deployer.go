package app

import (
	"context"
	"encoding/json"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/marathon-release/marathon-release/cli/command"
	"github.com/marathon-release/marathon-release/internal/metrics"
	"github.com/marathon-release/marathon-release/internal/reconcile"
)

// deployer creates or updates applications so that they match their
// definition.
type deployer struct {
	cli     command.Cli
	dryRun  bool
	verbose bool
}

// deploy reconciles a single application. A failure to retrieve or change
// the application is logged and counted, and not returned: the run only
// stops when its context is done.
func (d *deployer) deploy(ctx context.Context, def app.Definition) error {
	id := def.ID()
	logger := log.G(ctx).WithField("app", id)

	live, err := d.cli.Client().AppInspect(ctx, id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !cerrdefs.IsNotFound(err) {
			logger.WithError(err).Errorf("could not retrieve application %q from %s", id, d.cli.Domain().MarathonURL)
			d.cli.Metrics().Inc(metrics.Failed, d.dryRun)
			return nil
		}
		live = nil
	}

	decision := reconcile.Decide(def, live)
	switch decision.Action {
	case reconcile.NoOp:
		logger.Infof("no changes to application %q", id)
		d.cli.Metrics().Inc(metrics.Unchanged, d.dryRun)
		return nil
	case reconcile.Create:
		logger.Infof("deploying new application %q", id)
		if d.dryRun {
			d.cli.Metrics().Inc(metrics.Created, true)
			return nil
		}
		err = d.cli.Client().AppCreate(ctx, decision.Payload)
		d.report(ctx, id, metrics.Created, err)
	case reconcile.Update:
		logger.Infof("updating application %q", id)
		if d.verbose {
			if err := printDiff(d.cli, decision.Diff); err != nil {
				return err
			}
		}
		if d.dryRun {
			d.cli.Metrics().Inc(metrics.Updated, true)
			return nil
		}
		err = d.cli.Client().AppUpdate(ctx, id, decision.Payload)
		d.report(ctx, id, metrics.Updated, err)
	}
	return nil
}

func (d *deployer) report(ctx context.Context, id string, action metrics.Action, err error) {
	logger := log.G(ctx).WithField("app", id)
	if err != nil {
		logger.WithError(err).Errorf("deployment for application %q failed", id)
		d.cli.Metrics().Inc(metrics.Failed, false)
		return
	}
	logger.Infof("deployment running for application %q", id)
	d.cli.Metrics().Inc(action, false)
}

// printDiff writes the changes to an application to stderr, as JSON.
func printDiff(cli command.Cli, ops []reconcile.Operation) error {
	out, err := json.MarshalIndent(ops, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.Err(), string(out))
	return err
}
