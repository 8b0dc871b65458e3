// Package handler maps HTTP routes to service calls.
//
// Every route goes through the generic pipeline in base.go: bind and
// validate a fresh request, call the service, log durations, annotate the
// New Relic transaction and write the response.
package handler
