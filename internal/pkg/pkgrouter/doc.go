// Package pkgrouter wraps HTTP routing and the middleware shared by every
// endpoint of the service.
//
// Handlers return a payload or an error; the router encodes the JSON envelope
// and maps pkgerror values to status codes. Each request gets a correlation ID,
// panic recovery, a log line and Prometheus request metrics. GET /ready runs
// the checks registered with AddCheck.
package pkgrouter
