package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Persistence & Storage Errors
var (
	ErrCollectionRead  = errors.New("collection read failed")
	ErrCollectionWrite = errors.New("collection write failed")
	ErrNoStorageTarget = errors.New("no storage target accepted the write")
)

// NewPersistenceError wraps a disk read/write failure. The caller gets a
// generic 500; the cause stays in the log chain.
func NewPersistenceError(operation, collection string, cause error) *ApiErr {
	sentinel := ErrCollectionRead
	if operation == "save" {
		sentinel = ErrCollectionWrite
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        sentinel,
		Details:    fmt.Sprintf("Failed to %s %s", operation, collection),
		Cause:      cause,
	}
}

func NewNoStorageTargetError(folder, filename string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrNoStorageTarget,
		Details:    fmt.Sprintf("No storage target accepted %s/%s", folder, filename),
	}
}

// Persistence & Storage Error Type Checkers
func IsCollectionReadError(err error) bool {
	return errors.Is(err, ErrCollectionRead)
}

func IsCollectionWriteError(err error) bool {
	return errors.Is(err, ErrCollectionWrite)
}

func IsNoStorageTargetError(err error) bool {
	return errors.Is(err, ErrNoStorageTarget)
}
