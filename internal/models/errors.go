package models

import "errors"

// Application-wide standard errors
var (
	// Resource errors
	ErrCharacterNotFound = errors.New("character not found")
	ErrSceneNotFound     = errors.New("scene not found")

	// Narrative generation errors. ErrGenerationFormat marks a response that
	// could not be parsed into the expected structured shape; it is an
	// infrastructure fault, distinct from a canon rejection which is a valid
	// outcome carried by EditOutcome. Neither is retried inside the core.
	ErrGenerationFailed = errors.New("narrative generation request failed")
	ErrGenerationFormat = errors.New("narrative generation response has unexpected format")

	// General request errors
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)
