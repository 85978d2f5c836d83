package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown connector type or dialect.
	ErrUnsupportedType = errors.New("unsupported type")

	// Connector Errors.

	// ErrConnectorClosed indicates an operation on a closed connector.
	ErrConnectorClosed = errors.New("connector closed")

	// Document Errors.

	// ErrMalformedDocument indicates the fetched bytes are not a JSON object.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrVersionMismatch indicates a published artifact belongs to another version.
	ErrVersionMismatch = errors.New("version mismatch")

	// Run Errors.

	// ErrNoControls indicates no document produced any control.
	// The run stops before any artifact is written.
	ErrNoControls = errors.New("no controls found")

	// ErrNoDocuments indicates the source listed no documents.
	ErrNoDocuments = errors.New("no documents found")
)
