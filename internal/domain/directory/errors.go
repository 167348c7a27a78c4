package directory

import "perfeval/internal/platform/apperror"

var (
	ErrUserNotFound = apperror.NotFound("user not found")
	ErrUserExists   = apperror.Conflict("user already exists")
)
