package client

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/marathon-release/marathon-release/api/types/app"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestAppUpdateError(t *testing.T) {
	client, err := newTestClient(errorMock(http.StatusConflict, "App is locked by one or more deployments."))
	assert.NilError(t, err)

	err = client.AppUpdate(context.Background(), "/a", app.Definition{"id": "/a"})
	assert.Check(t, is.ErrorType(err, cerrdefs.IsConflict))
}

func TestAppUpdate(t *testing.T) {
	const expectedURL = "/v2/apps/a"
	client, err := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != expectedURL {
			return nil, fmt.Errorf("expected URL '%s', got '%s'", expectedURL, req.URL.Path)
		}
		if req.Method != http.MethodPut {
			return nil, fmt.Errorf("expected PUT method, got %s", req.Method)
		}
		def, err := app.Decode(req.Body)
		if err != nil {
			return nil, err
		}
		if def.ID() != "/a" {
			return nil, fmt.Errorf("unexpected body: %v", def)
		}
		return jsonResponse(http.StatusOK, `{"version": "2017-06-01T10:15:00.125Z", "deploymentId": "5ed4c0c5"}`), nil
	})
	assert.NilError(t, err)

	err = client.AppUpdate(context.Background(), "/a", app.Definition{"id": "/a", "env": map[string]any{"RELEASE": "1.1"}})
	assert.NilError(t, err)
}
