// Package pkgroutine runs long-lived background tasks with a concurrency
// limit, turning returned errors and recovered panics into one error for Wait.
package pkgroutine
