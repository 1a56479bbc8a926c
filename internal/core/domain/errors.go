package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnknownSection indicates a section identifier outside the
	// recognised set.
	ErrUnknownSection = errors.New("unknown section")

	// ErrUnknownView indicates a view type outside front/back/side.
	ErrUnknownView = errors.New("unknown view type")

	// ErrSessionBusy indicates a conversation turn is already in flight
	// for the session. Turns are not pipelined.
	ErrSessionBusy = errors.New("a turn is already in progress for this session")

	// ErrCompletionUnavailable indicates the text-completion service is
	// not configured or unreachable. Edits cannot be extracted without it.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrImageGenUnavailable indicates the image-generation service is
	// not configured. View regeneration is disabled without it.
	ErrImageGenUnavailable = errors.New("image generation service unavailable")

	// ErrBlobStoreUnavailable indicates the blob store is not configured.
	// Generated images cannot be persisted without it.
	ErrBlobStoreUnavailable = errors.New("blob store unavailable")
)
