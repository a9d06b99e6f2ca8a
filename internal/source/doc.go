// Package source loads the schedule from an ordered chain of sources:
// local JSON records, a local CSV file, and the remote published-sheet CSV
// export, falling back to the last cached load and finally a built-in
// placeholder. The resolver always returns a usable schedule and never an
// error; individual source failures are logged and swallowed.
package source
