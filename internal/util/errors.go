package util

import "errors"

var (
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
	ErrWorldNotFound        = errors.New("world not found")
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrInvalidPracticeTopic = errors.New("invalid practice topic or level")
)

// ErrIdempotencyKeyReused means a key was replayed against a different challenge.
var ErrIdempotencyKeyReused = errors.New("idempotency key already used for another challenge")
