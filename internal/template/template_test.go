package template

import (
	"encoding/json"
	"os"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/marathon-release/marathon-release/api/types/app"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

// staticValues is a ValueSource that reads no files.
type staticValues map[string]string

func (v staticValues) Values(...string) (map[string]string, error) {
	return v, nil
}

// overlayValues is a ValueSource that returns the values of the first
// existing extra file it has values for.
type overlayValues struct {
	defaults map[string]string
	files    map[string]map[string]string
}

func (v overlayValues) Values(extraFiles ...string) (map[string]string, error) {
	values := make(map[string]string, len(v.defaults))
	for k, val := range v.defaults {
		values[k] = val
	}
	for _, f := range extraFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		for k, val := range v.files[f] {
			values[k] = val
		}
	}
	return values, nil
}

func TestRender(t *testing.T) {
	dir := fs.NewDir(t, "apps", fs.WithFile("a.json", `{"id": "/a", "env": {"RELEASE": "{{ release }}", "DOMAIN": "{{ domain_name|upper }}"}}`))

	out, err := Render(dir.Join("a.json"), map[string]string{"release": "1.1", "domain_name": "test"})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(out, `{"id": "/a", "env": {"RELEASE": "1.1", "DOMAIN": "TEST"}}`))
}

func TestRenderDoesNotEscape(t *testing.T) {
	dir := fs.NewDir(t, "apps", fs.WithFile("a.json", `{"cmd": "{{ cmd }}"}`))

	out, err := Render(dir.Join("a.json"), map[string]string{"cmd": "a && b > /dev/null"})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(out, `{"cmd": "a && b > /dev/null"}`))
}

func TestRenderUndefinedValue(t *testing.T) {
	dir := fs.NewDir(t, "apps", fs.WithFile("a.json", `{"user": "{{ user }}"}`))

	out, err := Render(dir.Join("a.json"), nil)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(out, `{"user": ""}`))
}

func TestRenderInclude(t *testing.T) {
	dir := fs.NewDir(t, "apps",
		fs.WithFile("labels.inc", `{"team": "{{ team }}"}`),
		fs.WithFile("a.json", `{"id": "/a", "labels": {% include "labels.inc" %}}`),
	)

	out, err := Render(dir.Join("a.json"), map[string]string{"team": "x"})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(out, `{"id": "/a", "labels": {"team": "x"}}`))
}

func TestRenderSyntaxError(t *testing.T) {
	dir := fs.NewDir(t, "apps", fs.WithFile("a.json", `{"id": "/a", "cmd": "{% if %}"}`))

	_, err := Render(dir.Join("a.json"), nil)
	assert.Check(t, is.ErrorContains(err, "invalid template "+dir.Join("a.json")))
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInvalidArgument))
}

func TestConfigFile(t *testing.T) {
	assert.Check(t, is.Equal(ConfigFile("apps/a.json"), "apps/a.cfg"))
	assert.Check(t, is.Equal(ConfigFile("/srv/apps/my.app.json"), "/srv/apps/my.app.cfg"))
}

func TestLoadDefinition(t *testing.T) {
	dir := fs.NewDir(t, "apps",
		fs.WithFile("a.json", `{"id": "/a", "env": {"RELEASE": "{{ release }}"}}`),
		fs.WithFile("b.json", `{"id": "/b", "env": {"RELEASE": "{{ release }}"}}`),
		fs.WithFile("b.cfg", ""),
	)
	src := overlayValues{
		defaults: map[string]string{"release": "1.1"},
		files: map[string]map[string]string{
			dir.Join("b.cfg"): {"release": "1.0"},
		},
	}

	def, err := LoadDefinition(dir.Join("a.json"), src)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(def, app.Definition{
		"id":  "/a",
		"env": map[string]any{"RELEASE": "1.1"},
	}))

	def, err = LoadDefinition(dir.Join("b.json"), src)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(def, app.Definition{
		"id":  "/b",
		"env": map[string]any{"RELEASE": "1.0"},
	}))
}

func TestLoadDefinitionKeepsNumbers(t *testing.T) {
	dir := fs.NewDir(t, "apps", fs.WithFile("a.json", `{"id": "/a", "instances": {{ instances }}, "cpus": 0.50}`))

	def, err := LoadDefinition(dir.Join("a.json"), staticValues{"instances": "3"})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(def["instances"], json.Number("3")))
	assert.Check(t, is.Equal(def["cpus"], json.Number("0.50")))
}

func TestLoadDefinitionWrongID(t *testing.T) {
	dir := fs.NewDir(t, "apps", fs.WithFile("a.json", `{"id": "/{{ domain_name }}/a"}`))

	_, err := LoadDefinition(dir.Join("a.json"), staticValues{"domain_name": "test"})
	assert.Check(t, is.ErrorContains(err, `application id "/test/a" is not "/a"`))
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInvalidArgument))
}

func TestLoadDefinitionInvalidJSON(t *testing.T) {
	dir := fs.NewDir(t, "apps", fs.WithFile("a.json", `{"id": "/a", {{ extra }}}`))

	_, err := LoadDefinition(dir.Join("a.json"), staticValues{"extra": ""})
	assert.Check(t, is.ErrorContains(err, "invalid template "+dir.Join("a.json")))
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInvalidArgument))
}

func TestLoadDefinitionNotAnObject(t *testing.T) {
	dir := fs.NewDir(t, "apps", fs.WithFile("a.json", `null`))

	_, err := LoadDefinition(dir.Join("a.json"), staticValues{})
	assert.Check(t, is.ErrorContains(err, "must be a JSON object"))
}
