// Package nownext resolves which session is happening now and which is next
// against a clock read in the festival's fixed timezone. Resolution is a
// pure computation over the session sequence, cheap enough to re-run every
// minute indefinitely, with no state retained between calls.
package nownext
