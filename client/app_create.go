package client

import (
	"context"

	"github.com/marathon-release/marathon-release/api/types/app"
)

// AppCreate deploys a new application.
func (cli *Client) AppCreate(ctx context.Context, def app.Definition) error {
	if _, err := trimID("application", def.ID()); err != nil {
		return err
	}
	resp, err := cli.post(ctx, "/v2/apps", nil, def, nil)
	defer ensureReaderClosed(resp)
	return err
}
