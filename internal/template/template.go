// Package template renders application definition templates.
//
// Templates use the Jinja syntax, as implemented by pongo2. Values are
// substituted as is; nothing is escaped.
package template

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/pkg/errors"
)

func init() {
	pongo2.SetAutoescape(false)
}

// ValueSource resolves the values substituted in a template. The extra
// files are read after the source's own configuration, so their values
// take precedence.
type ValueSource interface {
	Values(extraFiles ...string) (map[string]string, error)
}

type templateError struct {
	path string
	err  error
}

func (e *templateError) Error() string {
	return fmt.Sprintf("invalid template %s: %v", e.path, e.err)
}

func (e *templateError) Unwrap() error {
	return e.err
}

func (*templateError) InvalidParameter() {}

// Render renders the template at path with the given values. Templates can
// include and extend other templates in the same directory.
func Render(path string, values map[string]string) (string, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(filepath.Dir(path))
	if err != nil {
		return "", &templateError{path: path, err: err}
	}
	set := pongo2.NewSet(filepath.Base(path), loader)

	tpl, err := set.FromFile(filepath.Base(path))
	if err != nil {
		return "", &templateError{path: path, err: err}
	}

	ctx := make(pongo2.Context, len(values))
	for k, v := range values {
		ctx[k] = v
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", &templateError{path: path, err: err}
	}
	return out, nil
}

// ConfigFile returns the path of the configuration file holding the values
// specific to the application defined by the template at path.
func ConfigFile(path string) string {
	return filepath.Join(filepath.Dir(path), appName(path)+".cfg")
}

func appName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadDefinition renders the template at path and decodes the result into
// an application definition. The values of the application's configuration
// file (see [ConfigFile]), if it exists, override the values of src.
//
// The id of the definition must be "/" followed by the name of the template
// file without its extension.
func LoadDefinition(path string, src ValueSource) (app.Definition, error) {
	cfgFile := ConfigFile(path)
	values, err := src.Values(cfgFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration %s", cfgFile)
	}

	rendered, err := Render(path, values)
	if err != nil {
		return nil, err
	}

	def, err := app.Decode(strings.NewReader(rendered))
	if err != nil {
		return nil, &templateError{path: path, err: err}
	}

	if expected := "/" + appName(path); def.ID() != expected {
		return nil, &templateError{path: path, err: errors.Errorf("application id %q is not %q", def.ID(), expected)}
	}
	return def, nil
}
