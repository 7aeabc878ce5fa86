// Package appstore reads and writes sets of application definitions on
// disk.
package appstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/api/types/app"
	"github.com/marathon-release/marathon-release/internal/template"
	"github.com/moby/sys/atomicwriter"
	"github.com/pkg/errors"
)

// TemplatePattern matches the names of the template files in a directory.
const TemplatePattern = "*.json"

// Load renders every template in dir and returns the resulting definitions,
// keyed by application id. Templates are read in lexical order; if two
// templates define the same id, the first one is kept.
//
// An invalid template fails the whole load.
func Load(ctx context.Context, dir string, src template.ValueSource) (map[string]app.Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read application templates")
	}

	apps := make(map[string]app.Definition)
	for _, e := range entries {
		if ok, _ := filepath.Match(TemplatePattern, e.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())

		// follow symlinks
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			log.G(ctx).WithField("path", path).Warnf("skipping %q as it is not a file", path)
			continue
		}

		def, err := template.LoadDefinition(path, src)
		if err != nil {
			return nil, err
		}
		insert(ctx, apps, path, def)
	}
	return apps, nil
}

// insert adds def to apps unless apps already has a definition with the
// same id. It reports whether def was added.
func insert(ctx context.Context, apps map[string]app.Definition, path string, def app.Definition) bool {
	id := def.ID()
	if _, exists := apps[id]; exists {
		log.G(ctx).WithField("path", path).Errorf("skipping %q as it contains a duplicate app definition %q", path, id)
		return false
	}
	apps[id] = def
	return true
}

// Save writes each definition, normalized, to "<dir>/<id>.json". The
// directory is created if needed; an id with more than one path element
// is written to a sub-directory. Each file is replaced atomically.
func Save(ctx context.Context, apps map[string]app.Definition, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}
	for _, id := range app.IDs(apps) {
		filename, err := definitionPath(dir, id)
		if err != nil {
			return err
		}
		data, err := app.Encode(app.Normalize(apps[id].Clone()))
		if err != nil {
			return errors.Wrapf(err, "failed to encode application %s", id)
		}
		if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory for application %s", id)
		}
		if err := atomicwriter.WriteFile(filename, data, 0o644); err != nil {
			return errors.Wrapf(err, "failed to save application %s", id)
		}
		log.G(ctx).WithField("app", id).Debugf("saved application to %s", filename)
	}
	return nil
}

type invalidIDError string

func (e invalidIDError) Error() string {
	return "invalid application id " + string(e)
}

func (invalidIDError) InvalidParameter() {}

// definitionPath returns the file a definition with the given id is saved
// to. The file must be inside dir.
func definitionPath(dir, id string) (string, error) {
	rel := filepath.FromSlash(strings.Trim(id, "/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", invalidIDError(id)
	}
	return filepath.Join(dir, rel+".json"), nil
}
