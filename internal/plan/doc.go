// Package plan manages the attendee's saved plan: a persisted set of
// session IDs loosely joined against whatever schedule is currently loaded.
// A saved ID with no matching session is harmless and invisible. The plan
// is shareable as a deep link that reconstructs the same set elsewhere.
package plan
