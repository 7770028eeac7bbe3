package clientinfo

import "strings"

// OutputFieldCount is the number of values in an output line.
const OutputFieldCount = FieldCount + 4

// FormatRow joins the row's contact and residential fields, the residential
// coordinates, the postal fields and the postal coordinates with ", ".
// Values are not quoted.
func FormatRow(row Row, res *Resolution) string {
	residential := res.Residential.Coordinates()
	postal := res.Postal.Coordinates()

	out := make([]string, 0, OutputFieldCount)
	out = append(out, row[:FieldPostalStreet]...)
	out = append(out, residential[0], residential[1])
	out = append(out, row[FieldPostalStreet:]...)
	out = append(out, postal[0], postal[1])
	return strings.Join(out, ", ")
}
