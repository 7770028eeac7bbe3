package clientinfo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/client-info-cli/pkg/geocode"
)

// Options configures a Processor. It is copied at construction and never mutated.
type Options struct {
	// Country is appended to geocoding queries. Defaults to DefaultCountry.
	Country string
	// Rejects, when set, receives every dropped line.
	Rejects RejectSink
	// OnLine, when set, is called after each line with its outcome.
	OnLine func(Outcome)
}

// Processor validates and enriches client rows one line at a time.
type Processor struct {
	opts     Options
	resolver *Resolver
}

// NewProcessor creates a Processor backed by client.
func NewProcessor(client geocode.Client, opts Options) *Processor {
	return &Processor{
		opts:     opts,
		resolver: NewResolver(client, opts.Country),
	}
}

// Process handles one raw line: row validation, address resolution, postcode
// checks and output formatting. An error means the geocoding client failed.
func (p *Processor) Process(ctx context.Context, line string) (Outcome, error) {
	row, reason := ParseRow(line)
	if reason != ReasonNone {
		return Outcome{Reason: reason}, nil
	}

	res, reason, err := p.resolver.Resolve(ctx, row)
	if err != nil {
		return Outcome{}, err
	}
	if reason != ReasonNone {
		return Outcome{Reason: reason}, nil
	}

	if reason := CheckPostcodes(row, res); reason != ReasonNone {
		return Outcome{Reason: reason}, nil
	}

	return Outcome{Line: FormatRow(row, res)}, nil
}

// Run processes r line by line, writing accepted lines to w. It stops at the
// first geocoding error, write error, or context cancellation; the returned
// Stats cover the lines handled so far.
func (p *Processor) Run(ctx context.Context, r io.Reader, w io.Writer) (*Stats, error) {
	stats := NewStats()

	br := bufio.NewReader(r)

	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return stats, eris.Wrap(readErr, "clientinfo: read input")
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		if err := ctx.Err(); err != nil {
			return stats, eris.Wrap(err, "clientinfo: run cancelled")
		}
		lineNo++
		raw = strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

		outcome, err := p.Process(ctx, raw)
		if err != nil {
			return stats, eris.Wrapf(err, "clientinfo: line %d", lineNo)
		}
		stats.Record(outcome)

		if outcome.Accepted() {
			if _, err := fmt.Fprintln(w, outcome.Line); err != nil {
				return stats, eris.Wrap(err, "clientinfo: write output")
			}
		} else {
			zap.L().Debug("clientinfo: row rejected",
				zap.Int("line", lineNo),
				zap.String("reason", string(outcome.Reason)),
			)
			if p.opts.Rejects != nil {
				if err := p.opts.Rejects.Reject(lineNo, outcome.Reason, raw); err != nil {
					return stats, eris.Wrap(err, "clientinfo: record reject")
				}
			}
		}

		if p.opts.OnLine != nil {
			p.opts.OnLine(outcome)
		}
		if readErr == io.EOF {
			break
		}
	}

	return stats, nil
}
