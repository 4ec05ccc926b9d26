// Package api provides the REST adapter for the KarmicDD backend.
//
// A single Client implements every API port in driven. Requests carry the
// session token as a bearer header, pass through a client-side rate
// limiter and are recorded in Prometheus metrics. Responses with a non-2xx
// status are returned as *HTTPError, which unwraps to the matching domain
// sentinel so callers can branch with errors.Is.
package api
