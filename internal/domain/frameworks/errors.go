package frameworks

import "perfeval/internal/platform/apperror"

var (
	ErrFrameworkNotFound = apperror.NotFound("framework not found")
	ErrQuestionNotFound  = apperror.NotFound("question not found")
	ErrFrameworkExists   = apperror.Conflict("framework already exists")
)

// MissingQuestionText is shown for score rows whose question no longer exists.
const MissingQuestionText = "Question not found"
