package client

import "strings"

type emptyIDError string

func (e emptyIDError) InvalidParameter() {}

func (e emptyIDError) Error() string {
	return "invalid " + string(e) + " ID: value is empty"
}

// trimID trims the given application id, returning an error if it's empty.
// Leading and trailing slashes are removed, so that "/group/app" can be
// appended to an API path.
func trimID(objType, id string) (string, error) {
	id = strings.Trim(strings.TrimSpace(id), "/")
	if len(id) == 0 {
		return "", emptyIDError(objType)
	}
	return id, nil
}

// appPath returns the API path of the application with the given id.
func appPath(id string) (string, error) {
	id, err := trimID("application", id)
	if err != nil {
		return "", err
	}
	return "/v2/apps/" + id, nil
}
