// Package export derives calendar (ICS) and spreadsheet (CSV)
// representations of a set of sessions. Both are pure serializations of the
// normalized model: the same input always produces byte-identical output.
package export
