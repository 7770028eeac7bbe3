package clientinfo

// CheckPostcodes compares the geocoded postal codes against the row's postcode
// fields, residential first. Comparison is exact: "0800" and "800" differ.
func CheckPostcodes(row Row, res *Resolution) RejectReason {
	if res.Residential.PostalCode != row[FieldResidentialPostcode] {
		return ReasonResidentialPostcodeMismatch
	}
	if res.Postal.PostalCode != row[FieldPostalPostcode] {
		return ReasonPostalPostcodeMismatch
	}
	return ReasonNone
}
