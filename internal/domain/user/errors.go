package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidRole      = errors.New("invalid role")
	ErrActorNotFound    = errors.New("no authenticated actor in context")
	ErrSelfRoleChange   = errors.New("cannot change your own role")
)
