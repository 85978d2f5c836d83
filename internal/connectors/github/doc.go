// Package github implements a connector that reads FRMR documents from a
// GitHub repository through the contents API.
//
// # Architecture
//
// The connector follows the driven port pattern defined in [driven.Connector].
// It comprises the following components:
//
//   - Connector: lists and fetches documents and manages lifecycle
//   - Client: handles GitHub API communication with rate limiting
//   - Config: holds repository coordinates, credentials and timeouts
//
// # Discovery
//
// List reads the repository root once. When the consolidated document
// (FRMR.documentation.json) is present it is the only document returned.
// Otherwise every root file matching FRMR.*.json is returned, sorted by name.
//
// # Authentication
//
// A personal access token is read from the environment variable named by
// github.token_env (GITHUB_TOKEN by default). Without a token requests are
// unauthenticated and limited to 60 per hour, which is enough for a single
// publication run.
//
// # Rate Limiting
//
// Requests are throttled proactively with a token bucket and reactively
// from the X-RateLimit-* response headers. A rate limited response is
// reported as a transient failure so the pipeline can retry it.
//
// # Failure Classification
//
// Fetch never returns an error. Failures are classified as:
//
//   - not found: HTTP 404
//   - transient: rate limits, HTTP 5xx and timeouts
//   - permanent: everything else (bad credentials, forbidden, decode errors)
package github
