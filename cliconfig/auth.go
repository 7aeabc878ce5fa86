package cliconfig

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// AuthTokensFileName is the name of the file, in the home directory of the
// user, holding the identity token of the user.
const AuthTokensFileName = ".auth_tokens"

type authTokens struct {
	IDToken *string `json:"id_token"`
}

// DefaultAuthTokensFile returns the path of the auth tokens file in the home
// directory of the current user.
func DefaultAuthTokensFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AuthTokensFileName)
}

// LoadAuthorization returns the value of the Authorization header for the
// identity token stored in the given file. It returns an empty string if
// the file does not exist.
func LoadAuthorization(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	fi, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", invalidConfig(errors.Wrapf(err, "could not read token from %s", filename))
	}
	if !fi.Mode().IsRegular() {
		return "", nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", invalidConfig(errors.Wrapf(err, "could not read token from %s", filename))
	}
	var tokens authTokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return "", invalidConfig(errors.Wrapf(err, "could not read token from %s", filename))
	}
	if tokens.IDToken == nil {
		return "", invalidConfig(errors.Errorf("could not read token from %s: no id_token", filename))
	}
	return "Bearer " + *tokens.IDToken, nil
}
