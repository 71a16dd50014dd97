package delivery

import "errors"

var ErrFailureNotFound = errors.New("delivery failure not found")
