package errors

import (
	"errors"
)

var (
	ErrNoSession          = errors.New("no active session")
	ErrSessionExpired     = errors.New("session token is expired")
	ErrUnexpectedResponse = errors.New("unexpected response from server")
)
