// Package cliconfig resolves the configuration of a domain: the Marathon
// endpoint it deploys to, the credentials to use, and the values that are
// substituted in application templates.
package cliconfig

import (
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

const (
	// ConfigFileName is the name of the domain configuration file.
	ConfigFileName = "domain.cfg"
	// DomainNameKey is set in the DEFAULT section to the name of the
	// selected domain, unless the configuration sets it itself.
	DomainNameKey = "domain_name"
	// MarathonURLKey is the required key holding the Marathon endpoint.
	MarathonURLKey = "marathon_url"

	// DefaultDir is the configuration directory, relative to the working
	// directory.
	DefaultDir = "cfg"
	// ConfigDirEnv overrides DefaultDir.
	ConfigDirEnv = "MARATHON_RELEASE_CONFIG"
)

// Dir returns the directory the configuration file is stored in: the
// value of the MARATHON_RELEASE_CONFIG environment variable, or
// [DefaultDir] if it is not set.
func Dir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Clean(dir)
	}
	return DefaultDir
}

// loadOptions follow Python's configparser, which the configuration files
// were first written for. Option names are case insensitive, but section
// names are not.
var loadOptions = ini.LoadOptions{
	Loose:                      true,
	InsensitiveKeys:            true,
	IgnoreInlineComment:        true,
	AllowPythonMultilineValues: true,
}

// Domain is the resolved configuration of a single domain.
type Domain struct {
	// Name is the name of the domain, which is also the name of its
	// section in the configuration file.
	Name string
	// ConfigFile is the path of the configuration file the domain was
	// loaded from.
	ConfigFile string
	// MarathonURL is the base URL of the Marathon API.
	MarathonURL string
	// Authorization is the value of the Authorization header to send, or
	// empty to send none.
	Authorization string
	// TLSVerify enables verification of the server certificate.
	TLSVerify bool
}

// Load reads the configuration of the named domain from the configuration
// file in configDir. If configDir is empty, [Dir] is used.
func Load(configDir, name string) (*Domain, error) {
	if configDir == "" {
		configDir = Dir()
	}
	d := &Domain{
		Name:       name,
		ConfigFile: filepath.Join(configDir, ConfigFileName),
		TLSVerify:  true,
	}
	if _, err := os.Stat(d.ConfigFile); err != nil {
		if os.IsNotExist(err) {
			return nil, notFound("the domain configuration %s does not exist", d.ConfigFile)
		}
		return nil, invalidConfig(errors.Wrapf(err, "failed to read domain configuration %s", d.ConfigFile))
	}

	values, err := d.Values()
	if err != nil {
		return nil, err
	}
	d.MarathonURL = values[MarathonURLKey]
	if d.MarathonURL == "" {
		return nil, invalidConfig(errors.Errorf("no %s has been defined for domain %q in %s", MarathonURLKey, name, d.ConfigFile))
	}
	return d, nil
}

// Values returns the values of the domain's section, including the values
// it inherits from the DEFAULT section. Each extra file is read after the
// domain configuration, so its values take precedence; extra files that
// do not exist are skipped.
//
// A value set in the domain's section always takes precedence over a value
// set in a DEFAULT section, regardless of the file it is read from.
func (d *Domain) Values(extraFiles ...string) (map[string]string, error) {
	sources := make([]any, 0, len(extraFiles))
	for _, f := range extraFiles {
		sources = append(sources, f)
	}
	cfg, err := ini.LoadSources(loadOptions, d.ConfigFile, sources...)
	if err != nil {
		return nil, invalidConfig(errors.Wrap(err, "failed to read configuration"))
	}

	defaults := cfg.Section(ini.DefaultSection)
	if !defaults.HasKey(DomainNameKey) {
		if _, err := defaults.NewKey(DomainNameKey, d.Name); err != nil {
			return nil, invalidConfig(err)
		}
	}

	section, err := cfg.GetSection(d.Name)
	if err != nil {
		return nil, notFound("the domain %q does not exist in %s", d.Name, d.ConfigFile)
	}

	values := keyValues(defaults)
	if err := mergo.Merge(&values, keyValues(section), mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		return nil, err
	}
	return values, nil
}

// keyValues returns the keys of a section with their values interpolated.
func keyValues(section *ini.Section) map[string]string {
	values := make(map[string]string, len(section.Keys()))
	for _, k := range section.Keys() {
		values[k.Name()] = k.String()
	}
	return values
}
