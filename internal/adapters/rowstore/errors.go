package rowstore

import "errors"

// Sentinel kinds for row store errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected row store status")
	ErrPaginationLoop   = errors.New("pagination revisited a page")
	ErrInvalidToken     = errors.New("invalid page token")
	ErrInvalidBaseURL   = errors.New("invalid row store base url")
)
