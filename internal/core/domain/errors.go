package domain

import "errors"

// Domain errors. Lookup misses are returned as values; callers check with errors.Is.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotLoaded          = errors.New("data is still loading")
)
