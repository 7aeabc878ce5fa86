package client

import (
	"context"
	"encoding/json"

	"github.com/marathon-release/marathon-release/api/types/app"
)

type appResponse struct {
	App app.Definition `json:"app"`
}

// AppInspect returns the definition of the application with the given id,
// as currently deployed. The error satisfies
// [github.com/containerd/errdefs.IsNotFound] if the application does not
// exist.
func (cli *Client) AppInspect(ctx context.Context, appID string) (app.Definition, error) {
	path, err := appPath(appID)
	if err != nil {
		return nil, err
	}

	resp, err := cli.get(ctx, path, nil, nil)
	defer ensureReaderClosed(resp)
	if err != nil {
		return nil, err
	}

	var response appResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&response); err != nil {
		return nil, err
	}
	if response.App == nil {
		return nil, invalidResponse("application " + appID + " has no app definition")
	}
	return response.App, nil
}
