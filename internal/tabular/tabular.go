package tabular

import "strings"

// Parse tokenizes delimited text into rows of trimmed fields.
//
// Fields are comma-separated. A field may be double-quoted to contain literal
// commas or newlines; two consecutive double quotes inside a quoted field
// produce one literal quote. Row boundaries occur at unquoted line breaks;
// a carriage return immediately before the newline is consumed as part of
// the boundary. Rows whose fields are all empty after trimming are dropped.
// Trailing content without a final line break still yields a row.
//
// Known permissive behavior: an unterminated quote is not an error; the rest
// of the input is absorbed as literal field content.
func Parse(text string) [][]string {
	var rows [][]string
	var row []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if ch == '"' {
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if ch == ',' && !inQuotes {
			row = append(row, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}

		if ch == '\n' && !inQuotes {
			field := current.String()
			// \r\n is one boundary
			field = strings.TrimSuffix(field, "\r")
			row = append(row, strings.TrimSpace(field))
			current.Reset()
			if !rowEmpty(row) {
				rows = append(rows, row)
			}
			row = nil
			continue
		}

		current.WriteRune(ch)
	}

	if current.Len() > 0 || len(row) > 0 {
		row = append(row, strings.TrimSpace(current.String()))
		if !rowEmpty(row) {
			rows = append(rows, row)
		}
	}

	return rows
}

// rowEmpty reports whether every field in the row is empty.
func rowEmpty(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
