package models

import "errors"

// Custom errors
var (
	ErrNoRunners         = errors.New("race has no runners")
	ErrRunnerNameMissing = errors.New("runner name is required")
	ErrNotFound          = errors.New("record not found")
)
