package domain

import "errors"

// Sentinel errors returned by services and repositories. The transport layer
// maps them to HTTP status codes and stable reason strings.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrForbidden marks an existing resource the actor may not act on.
	// Resources filtered out by an ownership-scoped query surface as a
	// not-found error instead, so their existence is not leaked.
	ErrForbidden = errors.New("access forbidden")

	// ErrTaskNotAvailable is the claim precondition failure: the task is no
	// longer open or already has an assignee.
	ErrTaskNotAvailable = errors.New("task not available")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("inactive user")
	ErrInvalidRole        = errors.New("invalid role")
)
