package client

import "context"

// AppRemove destroys the application with the given id.
func (cli *Client) AppRemove(ctx context.Context, appID string) error {
	path, err := appPath(appID)
	if err != nil {
		return err
	}
	resp, err := cli.delete(ctx, path, nil, nil)
	defer ensureReaderClosed(resp)
	return err
}
