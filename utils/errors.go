package utils

import "errors"

// RunAndWrapOnError runs fn and joins its error, if any, with err. It is meant
// for cleanup on an error path, so fn is only called when err is not nil.
func RunAndWrapOnError(fn func() error, err error) error {
	if err == nil {
		return nil
	}
	if fnErr := fn(); fnErr != nil {
		return errors.Join(err, fnErr)
	}
	return err
}
