package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")

	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("action forbidden")

	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidInput is returned for values outside the accepted range.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrImageRequired is returned when a listing is created without an image.
	ErrImageRequired = errors.New("listing image is required")
	// ErrUnsupportedImage is returned for uploads outside jpeg/jpg/png.
	ErrUnsupportedImage = errors.New("image format not allowed")
)
