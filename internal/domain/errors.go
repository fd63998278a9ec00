package domain

import "errors"

// Pipeline failure causes. Each stage wraps its underlying error with one
// of these sentinels so the orchestrator can branch with errors.Is when
// composing the failure notification.
var (
	// ErrConnection means the registration database could not be reached.
	ErrConnection = errors.New("database connection failed")

	// ErrQuery means the registration query or its result scan failed.
	ErrQuery = errors.New("registration query failed")

	// ErrSchemaMismatch means a fetched row is missing an expected field.
	ErrSchemaMismatch = errors.New("row is missing an expected field")

	// ErrConversion means the spreadsheet-to-document conversion failed.
	ErrConversion = errors.New("document conversion failed")

	// ErrFileNotFound means the local artifact to upload does not exist.
	ErrFileNotFound = errors.New("local file not found")

	// ErrCredentials means the object-storage credentials are missing or
	// were rejected.
	ErrCredentials = errors.New("storage credentials not available")

	// ErrUpload is the generic upload failure (network, permission,
	// bucket not found).
	ErrUpload = errors.New("upload failed")
)
