package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyRawText       = errors.New("raw text is empty")
	ErrCredentialMissing  = errors.New("AI service credential is not configured")
	ErrDuplicateOrderID   = errors.New("order id already exists")
)
