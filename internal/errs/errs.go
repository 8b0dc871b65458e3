// Package errs defines the error types the API returns to clients.
//
// Every failure is either client-kind (bad input, unknown target, violated
// constraint) or internal-kind (storage or programming failure). HTTPError
// carries enough to render the JSON envelope written by the global error
// handler.
package errs
