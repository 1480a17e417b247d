// Package sec provides authentication and authorization primitives for the
// course API.
//
// # Authentication
//
// Every protected request carries HTTP Basic credentials of the form
// base64(email:password). Credentials are validated against bcrypt password
// hashes stored in the database; there are no sessions.
//
// IMPORTANT: Basic Auth transmits credentials in base64 encoding (not encrypted).
// TLS must be used in production to protect credentials in transit.
//
// All authentication failures surface to clients as the same [AccessDenied]
// message. The specific cause is only written to the server log.
//
// # Components
//
//   - [ParseBasicAuth]: Decodes an Authorization header value
//   - [Authenticate]: Validates credentials against the user store
//   - [Middleware]: echo middleware guarding protected routes
//   - [GetAuthenticatedUser], [SetAuthenticatedUser]: Context accessors for user info
//   - [Authorize]: Ownership guard for course mutations
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
package sec
