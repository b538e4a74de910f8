package store

import "errors"

// ErrNotFound is returned by stores when a record does not exist. Models
// translate it into the typed not-found errors the API exposes.
var ErrNotFound = errors.New("record not found")
