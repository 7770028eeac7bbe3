package clientinfo

import (
	"sort"

	"go.uber.org/zap"
)

// RejectReason records why a row produced no output.
type RejectReason string

const (
	ReasonNone                        RejectReason = ""
	ReasonHeader                      RejectReason = "header_duplicate"
	ReasonBlankField                  RejectReason = "blank_field"
	ReasonUnresolvedResidential       RejectReason = "unresolvable_residential_address"
	ReasonUnresolvedPostal            RejectReason = "unresolvable_postal_address"
	ReasonResidentialPostcodeMismatch RejectReason = "residential_postcode_mismatch"
	ReasonPostalPostcodeMismatch      RejectReason = "postal_postcode_mismatch"
)

// Outcome is the result of processing one line: either an output Line or a
// non-empty Reason.
type Outcome struct {
	Line   string
	Reason RejectReason
}

// Accepted reports whether the line produced output.
func (o Outcome) Accepted() bool { return o.Reason == ReasonNone }

// Stats counts line outcomes over a run.
type Stats struct {
	Lines    int
	Accepted int
	Rejected map[RejectReason]int
}

// NewStats returns an empty Stats.
func NewStats() *Stats {
	return &Stats{Rejected: make(map[RejectReason]int)}
}

// Record adds one outcome.
func (s *Stats) Record(o Outcome) {
	s.Lines++
	if o.Accepted() {
		s.Accepted++
		return
	}
	s.Rejected[o.Reason]++
}

// RejectedTotal returns the number of rejected lines, header duplicates included.
func (s *Stats) RejectedTotal() int {
	var n int
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// Fields returns the counters as zap fields, reasons in sorted order.
func (s *Stats) Fields() []zap.Field {
	fields := []zap.Field{
		zap.Int("lines", s.Lines),
		zap.Int("accepted", s.Accepted),
		zap.Int("rejected", s.RejectedTotal()),
	}
	reasons := make([]string, 0, len(s.Rejected))
	for r := range s.Rejected {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fields = append(fields, zap.Int("rejected_"+r, s.Rejected[RejectReason(r)]))
	}
	return fields
}
