// Package tabular tokenizes raw delimited text into rows of trimmed string
// fields. It is deliberately minimal and tied to the shape of published
// schedule sheets; it is not a general CSV library. Header interpretation
// happens in the session normalizer.
package tabular
