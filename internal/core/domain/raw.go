package domain

import "fmt"

// RawDocument represents opaque bytes fetched by a connector.
// It is the connector's output before dialect detection.
type RawDocument struct {
	// Name is the file name of the document (e.g., "FRMR.KSI.key-security-indicators.json").
	// Legacy requirement documents derive their standard code from it.
	Name string

	// URI is the original location (file path, URL, etc).
	URI string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}

// FailureKind classifies why a document could not be retrieved.
type FailureKind string

// Retrieval failure kinds.
const (
	// FailureNotFound indicates the document does not exist at the source.
	FailureNotFound FailureKind = "not_found"

	// FailureTransient indicates a timeout, rate limit or server error.
	// Transient failures may succeed when retried.
	FailureTransient FailureKind = "transient"

	// FailurePermanent indicates a failure that retrying will not fix
	// (authorisation, bad request, unreadable file).
	FailurePermanent FailureKind = "permanent"
)

// FetchFailure describes a failed retrieval.
type FetchFailure struct {
	// Kind classifies the failure.
	Kind FailureKind

	// Detail is a human-readable description.
	Detail string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (f *FetchFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Detail, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

// Unwrap returns the underlying error.
func (f *FetchFailure) Unwrap() error {
	return f.Err
}

// FetchResult is the outcome of retrieving one document.
// Exactly one of Document and Failure is set.
type FetchResult struct {
	Document *RawDocument
	Failure  *FetchFailure
}

// Fetched returns a successful result.
func Fetched(doc RawDocument) FetchResult {
	return FetchResult{Document: &doc}
}

// FetchFailed returns a failed result.
func FetchFailed(kind FailureKind, detail string, err error) FetchResult {
	return FetchResult{Failure: &FetchFailure{Kind: kind, Detail: detail, Err: err}}
}

// OK reports whether the retrieval succeeded.
func (r FetchResult) OK() bool {
	return r.Failure == nil && r.Document != nil
}

// Retryable reports whether the failure may succeed on a later attempt.
func (r FetchResult) Retryable() bool {
	return r.Failure != nil && r.Failure.Kind == FailureTransient
}

// Err returns the failure as an error, or nil on success.
func (r FetchResult) Err() error {
	if r.OK() {
		return nil
	}
	if r.Failure == nil {
		return &FetchFailure{Kind: FailurePermanent, Detail: "no document returned"}
	}
	return r.Failure
}
