package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for directory operations
var (
	// ErrPermissionDenied means the caller lacks admin privilege for the operation
	ErrPermissionDenied = goerr.New("permission denied by directory")

	// ErrDirectoryUnavailable means the directory could not be reached or answered 5xx
	ErrDirectoryUnavailable = goerr.New("directory unavailable")

	// ErrUserNotFound means the directory has no such user
	ErrUserNotFound = goerr.New("user not found in directory")

	// ErrGrantNotFound means the grant does not exist, typically because it
	// was already revoked
	ErrGrantNotFound = goerr.New("grant not found")

	// ErrInvalidConfig means the run configuration is rejected before any directory call
	ErrInvalidConfig = goerr.New("invalid run configuration")
)
