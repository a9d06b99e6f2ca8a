// Package session defines the canonical festival session model and the
// normalizer that turns loosely structured tabular or record-shaped input
// into validated, uniquely identified, time-ordered sessions.
package session
