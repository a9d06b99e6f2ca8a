// Package cli implements the festplan command-line interface: the schedule
// view, now/next queries, saved-plan management, exports, share links, and
// the periodic watch loop. It is a thin surface over the core packages;
// everything user-visible degrades gracefully rather than erroring.
package cli
