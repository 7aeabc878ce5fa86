package cliconfig

import "fmt"

type notFoundError struct {
	error
}

func (notFoundError) NotFound() {}

func (e notFoundError) Unwrap() error {
	return e.error
}

func notFound(format string, args ...any) error {
	return notFoundError{fmt.Errorf(format, args...)}
}

type invalidConfigError struct {
	error
}

func (invalidConfigError) InvalidParameter() {}

func (e invalidConfigError) Unwrap() error {
	return e.error
}

func invalidConfig(err error) error {
	return invalidConfigError{err}
}
