package errors

import (
	"errors"
)

// indicates an unrecoverable error
var ErrPermanentFailure = errors.New("permanent failure, do not retry")

// a run cannot start without items
var ErrEmptyRequest = errors.New("ingestion request contains no items")
