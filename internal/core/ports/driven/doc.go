// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Connector: Fetches FRMR documents from a source
//   - ConnectorFactory: Creates connectors from settings
//   - SchemaParser: Extracts controls from one dialect
//   - ParserRegistry: Detects the dialect and selects a parser
//   - ArtifactStore: Reads and writes published artifacts
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PublicationLedger: Publication history. An in-memory ledger is used when disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
