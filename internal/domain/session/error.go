package session

import "errors"

// ErrInvalidSession токен неизвестен или истек.
var ErrInvalidSession = errors.New("invalid or expired session")
