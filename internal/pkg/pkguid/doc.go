// Package pkguid provides the id generators used by the service: UUIDv7
// strings for HTTP correlation ids and snowflake numbers for websocket
// request ids.
package pkguid
