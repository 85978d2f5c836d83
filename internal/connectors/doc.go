// Package connectors provides implementations of the Connector interface
// for FRMR document sources. Each connector knows how to list and fetch
// documents from a specific source type (github, http, filesystem).
//
// Connectors are created by the Factory from source settings at startup.
package connectors
