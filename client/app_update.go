package client

import (
	"context"

	"github.com/marathon-release/marathon-release/api/types/app"
)

// AppUpdate replaces the definition of the application with the given id,
// which starts a deployment.
func (cli *Client) AppUpdate(ctx context.Context, appID string, def app.Definition) error {
	path, err := appPath(appID)
	if err != nil {
		return err
	}
	resp, err := cli.put(ctx, path, nil, def, nil)
	defer ensureReaderClosed(resp)
	return err
}
