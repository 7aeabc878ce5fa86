package client

import (
	"context"

	"github.com/marathon-release/marathon-release/api/types/app"
)

// APIClient is an interface that clients that talk with a Marathon server
// must implement.
type APIClient interface {
	AppAPIClient
	Host() string
}

// AppAPIClient defines API client methods for applications.
type AppAPIClient interface {
	AppInspect(ctx context.Context, appID string) (app.Definition, error)
	AppList(ctx context.Context) (map[string]app.Definition, error)
	AppCreate(ctx context.Context, def app.Definition) error
	AppUpdate(ctx context.Context, appID string, def app.Definition) error
	AppRemove(ctx context.Context, appID string) error
}

// Ensure that Client always implements APIClient.
var _ APIClient = &Client{}
