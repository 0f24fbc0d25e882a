package usecase

import "errors"

// ErrStatusNotFound is returned by a StatusStore when the session has no record.
var ErrStatusNotFound = errors.New("status record not found")
