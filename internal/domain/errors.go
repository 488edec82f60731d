package domain

import "errors"

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUserInactive              = errors.New("user is inactive")
	ErrDuplicateEmail            = errors.New("email already registered")
	ErrPasswordResetTokenInvalid = errors.New("password reset token is invalid or expired")
	ErrUnsupportedFileType       = errors.New("unsupported file type")
	ErrFileTooLarge              = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed              = errors.New("file upload to storage failed")

	// ErrNoTextDetected distinguishes "the picture held no readable text"
	// from infrastructure failure; callers surface it as an empty
	// suggestion, never as a server error.
	ErrNoTextDetected = errors.New("no text detected in image")

	ErrFikenAuthFailed         = errors.New("fiken rejected the credentials")
	ErrFikenCredentialsMissing = errors.New("no fiken credentials on account")
	ErrCompanyNotSet           = errors.New("no active company selected")
	ErrUnknownCompany          = errors.New("user has no access to that company")
	ErrUnknownVATCode          = errors.New("unknown SAF-T VAT code")
	ErrEmptyDraft              = errors.New("draft has no lines")
)
