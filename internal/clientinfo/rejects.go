package clientinfo

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// RejectSink receives lines that produced no output.
type RejectSink interface {
	Reject(line int, reason RejectReason, raw string) error
}

// CSVRejectWriter writes rejects as CSV records: line,reason,raw.
// Header duplicates are not recorded.
type CSVRejectWriter struct {
	w *csv.Writer
}

// NewCSVRejectWriter writes a "line,reason,raw" header to w and returns the sink.
func NewCSVRejectWriter(w io.Writer) (*CSVRejectWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"line", "reason", "raw"}); err != nil {
		return nil, eris.Wrap(err, "clientinfo: write rejects header")
	}
	return &CSVRejectWriter{w: cw}, nil
}

// Reject implements RejectSink.
func (c *CSVRejectWriter) Reject(line int, reason RejectReason, raw string) error {
	if reason == ReasonHeader {
		return nil
	}
	record := []string{strconv.Itoa(line), string(reason), strings.TrimRight(raw, "\r\n")}
	if err := c.w.Write(record); err != nil {
		return eris.Wrap(err, "clientinfo: write reject")
	}
	return nil
}

// Flush writes buffered records to the underlying writer.
func (c *CSVRejectWriter) Flush() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return eris.Wrap(err, "clientinfo: flush rejects")
	}
	return nil
}
