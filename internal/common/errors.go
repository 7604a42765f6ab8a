package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Template errors
	ErrTemplateNotFound = errors.New("template not found")

	// Generated document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrVersionNotFound  = errors.New("document version not found")

	// Assembly errors
	ErrInvalidAssemblyInput = errors.New("assembly requires at least two templates")

	// CRM errors
	ErrClientNotFound = errors.New("client not found")
	ErrCaseNotFound   = errors.New("case not found")

	// Auto-fill errors
	ErrAutoFillUnavailable = errors.New("auto-fill data unavailable")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Storage errors
	ErrStorageUnavailable = errors.New("document storage not configured")
)
