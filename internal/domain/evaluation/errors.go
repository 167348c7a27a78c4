package evaluation

import "perfeval/internal/platform/apperror"

var (
	ErrCycleNotFound      = apperror.NotFound("cycle not found")
	ErrSubmissionNotFound = apperror.NotFound("submission not found")
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrFrameworkNotFound  = apperror.NotFound("framework not found")
	ErrCycleExists        = apperror.Conflict("cycle already exists")
	ErrAlreadySubmitted   = apperror.InvalidState("evaluation already submitted")
	ErrCycleClosed        = apperror.InvalidState("cycle is completed")
	ErrInvalidTransition  = apperror.InvalidState("cycle status transition not allowed")
	ErrNotAssigned        = apperror.InvalidState("evaluator is not assigned to this evaluation")
)
