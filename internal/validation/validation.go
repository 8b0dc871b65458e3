// Package validation binds and validates request payloads.
//
// Rules live in `validate` struct tags on the request types. Failures are
// returned as a 400 *errs.HTTPError whose field errors use the JSON names
// the client sent.
package validation
