// Package ingest turns raw import payloads — delimited bank exports, OCR
// text from statement photos and invoice scans, OFX files — into canonical
// ledger records. One malformed row never aborts a batch: bad values degrade
// to safe defaults at normalization time.
package ingest

import (
	"strings"
)

// Row is one parsed line of a delimited export, keyed by header name.
// Values are raw strings; coercion happens at read time via normalize.
type Row map[string]string

// ParseDelimited parses header-first delimited text. The separator is
// auto-detected from the header line (';' when it splits into more fields
// than ','), quoted fields may contain the separator, BOM and CR characters
// are stripped, non-breaking spaces are trimmed from values and empty lines
// are skipped.
func ParseDelimited(text string) []Row {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r", "")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	sep := byte(',')
	if len(splitQuoted(lines[0], ';')) > len(splitQuoted(lines[0], ',')) {
		sep = ';'
	}

	header := splitQuoted(lines[0], sep)
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := splitQuoted(line, sep)
		row := make(Row, len(header))
		for i, h := range header {
			var v string
			if i < len(cells) {
				v = cells[i]
			}
			v = strings.TrimSpace(strings.ReplaceAll(v, " ", " "))
			row[h] = v
		}
		rows = append(rows, row)
	}
	return rows
}

// splitQuoted splits a line on sep, treating double quotes as toggles: a
// separator inside quotes is not a split point. Quote characters themselves
// are dropped.
func splitQuoted(line string, sep byte) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == sep && !inQuotes:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	out = append(out, cur.String())
	return out
}
