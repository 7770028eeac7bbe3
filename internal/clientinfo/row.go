package clientinfo

import "strings"

// Row is a well-formed client record after blank compaction.
type Row [FieldCount]string

// ParseRow splits a raw line into a Row. It returns ReasonHeader when the line
// repeats the header and ReasonBlankField when fewer than FieldCount non-empty
// fields remain.
//
// Empty fields are removed before the length check, so an internal blank shifts
// every later field left by one position. A row with a blank is rejected only
// when fewer than FieldCount values remain; otherwise it keeps its first
// FieldCount values, shifted.
func ParseRow(line string) (Row, RejectReason) {
	var row Row

	fields := splitLine(line)
	if isHeader(fields) {
		return row, ReasonHeader
	}

	compact := fields[:0]
	for _, f := range fields {
		if f != "" {
			compact = append(compact, f)
		}
	}
	if len(compact) < FieldCount {
		return row, ReasonBlankField
	}

	copy(row[:], compact)
	return row, ReasonNone
}

// splitLine trims surrounding whitespace and line terminators, splits on commas,
// and drops trailing empty fields.
func splitLine(line string) []string {
	fields := strings.Split(strings.TrimSpace(line), ",")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}
