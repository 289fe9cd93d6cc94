package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrMissingDate       = errors.New("missing date")
	ErrFetch             = errors.New("row store fetch failed")
	ErrInsert            = errors.New("row store insert failed")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrNotStarted        = errors.New("service not started")
	ErrNoStore           = errors.New("no row store configured")
)
