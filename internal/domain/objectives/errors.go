package objectives

import "perfeval/internal/platform/apperror"

var (
	ErrObjectiveNotFound = apperror.NotFound("objective not found")
	ErrUserNotFound      = apperror.NotFound("user not found")
	ErrObjectiveExists   = apperror.Conflict("objective already exists")
	ErrKPIExists         = apperror.Conflict("kpi already exists")
	ErrCycleLocked       = apperror.InvalidState("cycle has started; objectives are read-only")
)
