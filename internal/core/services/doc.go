// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The publication pipeline runs in stages:
//
//   - Fetch: list and fetch documents through a Connector, retrying transient failures
//   - Parse: detect the dialect and extract controls through the ParserRegistry
//   - Aggregate: merge controls from every document into one ControlSet
//   - Build: derive the OSCAL catalog, one profile per impact level and the CSV
//   - Publish: compare against the published artifacts and write them
//
// Services depend only on ports and the domain; no adapter is imported here.
package services
