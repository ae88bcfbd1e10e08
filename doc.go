// Package auth is a stateless token-based authentication and authorization
// core. It issues, validates, and refreshes self-contained signed tokens,
// verifies credentials against a pluggable store, and enforces role-based
// access at the request boundary.
//
// Tokens:
//   - Access tokens are short-lived and carry subject, phone, and role.
//   - Refresh tokens are long-lived and carry only the subject. They are
//     exchanged for a fresh pair carrying the user's current role, so role
//     changes take effect on refresh.
//   - There is no server-side revocation: logout is informational and a
//     leaked token stays valid until natural expiry. Deployments that need
//     revocation must add a denylist keyed by token id + expiry.
//
// The middleware/guard subpackage provides the request-boundary enforcement:
// bearer-header parsing, an immutable route policy table, and role checks.
package auth
