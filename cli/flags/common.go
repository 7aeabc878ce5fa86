package flags

import (
	"strconv"

	"github.com/containerd/log"
	"github.com/marathon-release/marathon-release/cliconfig"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// DefaultAppsDir is the default directory holding the application
	// templates.
	DefaultAppsDir = "apps"
	// FlagDomainName is the flag name for the domain to operate on.
	FlagDomainName = "domain-name"
	// FlagVerifySSL is the flag name for the TLS verification option.
	FlagVerifySSL = "verify-ssl"
)

// ClientOptions are the options of the root command, shared by all
// commands.
type ClientOptions struct {
	Debug          bool
	LogLevel       string
	ConfigDir      string
	AppsDir        string
	AuthTokensFile string
	MetricsFile    string
}

// NewClientOptions returns a new ClientOptions.
func NewClientOptions() *ClientOptions {
	return &ClientOptions{}
}

// InstallFlags adds flags for the common options on the FlagSet
func (o *ClientOptions) InstallFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&o.Debug, "debug", "D", false, "Enable debug mode")
	flags.StringVarP(&o.LogLevel, "log-level", "l", "info", `Set the logging level ("debug", "info", "warn", "error", "fatal")`)
	flags.StringVar(&o.ConfigDir, "config-dir", cliconfig.Dir(), "Location of the domain configuration")
	flags.StringVar(&o.AppsDir, "apps-dir", DefaultAppsDir, "Location of the application templates")
	flags.StringVar(&o.AuthTokensFile, "auth-tokens-file", cliconfig.DefaultAuthTokensFile(), "Path to the file holding the identity token")
	flags.StringVar(&o.MetricsFile, "metrics-file", "", "Write metrics of the run to this file, in Prometheus text format")
}

// SetLogLevel sets the logging level. Debug mode overrides the level.
func (o *ClientOptions) SetLogLevel() error {
	level := o.LogLevel
	if o.Debug {
		level = "debug"
	}
	if level == "" {
		level = "info"
	}
	if err := log.SetLevel(level); err != nil {
		return errors.Wrapf(err, "unable to parse logging level: %s", level)
	}
	return nil
}

// DomainOptions select the domain a command operates on.
type DomainOptions struct {
	Name      string
	TLSVerify bool
}

// InstallFlags adds flags for the domain options on the FlagSet. The
// domain name is required.
func (o *DomainOptions) InstallFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.Name, FlagDomainName, "", "Name of the domain, a section in the domain configuration")
	_ = cobra.MarkFlagRequired(flags, FlagDomainName)

	flags.BoolVar(&o.TLSVerify, FlagVerifySSL, true, "Verify the certificate of the Marathon server")
	flags.VarPF(negatedBool{&o.TLSVerify}, "no-"+FlagVerifySSL, "", "Do not verify the certificate of the Marathon server").NoOptDefVal = "true"
}

// negatedBool is a boolean flag that stores the inverse of its value.
type negatedBool struct {
	target *bool
}

func (b negatedBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*b.target = !v
	return nil
}

func (b negatedBool) String() string {
	if b.target == nil {
		return "false"
	}
	return strconv.FormatBool(!*b.target)
}

func (negatedBool) Type() string {
	return "bool"
}
