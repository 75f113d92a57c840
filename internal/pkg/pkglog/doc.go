// Package pkglog configures the process-wide slog logger.
//
// Records are JSON with stable keys, carry the service name and the request
// correlation ID when one is in the context, and the level can be changed
// while running (the app wires it to config reloads).
package pkglog
