package client

import (
	"context"
	"encoding/json"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/marathon-release/marathon-release/api/types/app"
)

type appListResponse struct {
	Apps []app.Definition `json:"apps"`
}

// AppList returns the definitions of all deployed applications, keyed by
// application id. A server without an application endpoint (404) has no
// applications.
func (cli *Client) AppList(ctx context.Context) (map[string]app.Definition, error) {
	resp, err := cli.get(ctx, "/v2/apps", nil, nil)
	defer ensureReaderClosed(resp)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return map[string]app.Definition{}, nil
		}
		return nil, err
	}

	var response appListResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&response); err != nil {
		return nil, err
	}

	apps := make(map[string]app.Definition, len(response.Apps))
	for _, def := range response.Apps {
		id := def.ID()
		if id == "" {
			return nil, invalidResponse("application without id in application list")
		}
		apps[id] = def
	}
	return apps, nil
}
