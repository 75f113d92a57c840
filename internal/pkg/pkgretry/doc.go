// Package pkgretry runs operations with capped exponential backoff.
//
// A Policy describes the delays and which errors are worth retrying. Do runs a
// function under the policy, and Delay/Sleep are exposed for loops that manage
// their own attempt counter (for example a reconnect loop that resets after a
// healthy session).
package pkgretry
