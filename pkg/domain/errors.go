package domain

import "errors"

// ErrMissingName is returned when an environment has no name.
var ErrMissingName = errors.New("environment missing required 'name' field")

// ErrInvalidWorkspaceName is returned for non-positive slots or labels containing ':'.
var ErrInvalidWorkspaceName = errors.New("invalid workspace name")

// ErrEnvironmentNotFound is returned when a name does not match any environment.
var ErrEnvironmentNotFound = errors.New("environment not found")

// ErrRenameFailed wraps a rejected rename command.
var ErrRenameFailed = errors.New("workspace rename failed")

// ErrRecordNotFound is returned when no activation has been recorded yet.
var ErrRecordNotFound = errors.New("activation record not found")

// ErrInvalidEnvironment marks an entry whose fields could not be decoded.
var ErrInvalidEnvironment = errors.New("invalid environment definition")
