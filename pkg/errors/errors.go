package errors

import "errors"

// ErrOptimisticLock signals that a row was modified by a concurrent operation.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")
