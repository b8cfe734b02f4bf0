package errors

import "errors"

// ErrOptimisticLock indicates the record was modified by another operation
// between read and write. Callers should re-read and retry.
var ErrOptimisticLock = errors.New("record modified by another operation")
