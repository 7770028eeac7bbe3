// Package clientinfo validates client contact CSV exports and enriches each row's
// residential and postal addresses with geocoded coordinates.
package clientinfo

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Header is the exact first row every accepted input file must carry.
var Header = []string{
	"Email",
	"First Name",
	"Last Name",
	"Residential Address Street",
	"Residential Address Locality",
	"Residential Address State",
	"Residential Address Postcode",
	"Postal Address Street",
	"Postal Address Locality",
	"Postal Address State",
	"Postal Address Postcode",
}

// FieldCount is the number of fields in a well-formed row.
const FieldCount = 11

// Field positions within a Row.
const (
	FieldEmail = iota
	FieldFirstName
	FieldLastName
	FieldResidentialStreet
	FieldResidentialLocality
	FieldResidentialState
	FieldResidentialPostcode
	FieldPostalStreet
	FieldPostalLocality
	FieldPostalState
	FieldPostalPostcode
)

// isHeader reports whether fields equal Header field-for-field.
func isHeader(fields []string) bool {
	if len(fields) != len(Header) {
		return false
	}
	for i, f := range fields {
		if f != Header[i] {
			return false
		}
	}
	return true
}

// headerList renders Header as ["Email", "First Name", ...].
func headerList() string {
	quoted := make([]string, len(Header))
	for i, h := range Header {
		quoted[i] = strconv.Quote(h)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// readFirstRecord parses the first physical line of the file at path as a CSV
// record. It returns nil for an empty file and an empty record for a blank
// first line.
func readFirstRecord(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "clientinfo: open input")
	}
	defer f.Close() //nolint:errcheck

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, eris.Wrap(err, "clientinfo: read header")
	}
	if line == "" {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err == io.EOF {
		return []string{}, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "clientinfo: parse header")
	}
	return record, nil
}
