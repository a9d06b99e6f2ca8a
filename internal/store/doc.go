// Package store persists the planner's local key-value state (saved session
// IDs, the schedule cache slot, preferences, one-time flags) as JSON
// documents. A file-backed store and an in-memory fake share one interface
// so every consumer can be tested without touching disk.
package store
