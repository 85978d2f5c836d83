// Package memory provides an in-memory publication ledger. It is used when
// the persistent ledger is disabled, so history reflects the current
// process only.
package memory
