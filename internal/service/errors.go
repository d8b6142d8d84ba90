package service

import "errors"

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
