package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/nfcsnoop"
	"github.com/rigado/nfcsnoop/metrics"
	"github.com/rigado/nfcsnoop/nci"
	"github.com/rigado/nfcsnoop/snoop"
)

const DefaultInterval = 250 * time.Millisecond

// Source returns the full rendered snoop log, one record per line, oldest first.
type Source interface {
	Dump(ctx context.Context) (string, error)
}

// Monitor polls a Source and prints the packets appended between polls.
type Monitor struct {
	src      Source
	out      io.Writer
	format   Formatter
	verbose  bool
	interval time.Duration
	logger   nfcsnoop.Logger

	tail Tail
}

func New(src Source, opts ...Option) (*Monitor, error) {
	if src == nil {
		return nil, errors.New("nil source")
	}

	m := &Monitor{
		src:      src,
		out:      os.Stdout,
		format:   TextFormatter{},
		interval: DefaultInterval,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, errors.Wrap(err, "can't set options")
		}
	}

	if m.logger == nil {
		m.logger = nfcsnoop.GetLogger().ChildLogger(map[string]interface{}{"component": "monitor"})
	}

	return m, nil
}

// Run polls until ctx is done or a poll fails.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if err := m.Poll(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.interval):
		}
	}
}

// Poll runs one cycle: read the dump, find the new records, print them.
// Only a failing source or output aborts the cycle; bad records are
// logged and skipped.
func (m *Monitor) Poll(ctx context.Context) error {
	dump, err := m.src.Dump(ctx)
	if err != nil {
		metrics.RecordPoll(metrics.PollError, 0)
		return errors.Wrap(err, "poll")
	}
	metrics.RecordPoll(metrics.PollOK, strings.Count(dump, "\n"))

	lines, found := m.tail.Next(dump)
	if !found {
		metrics.RecordAnchorMiss()
		m.logger.Warnf("previous tail not found in snoop log, treating all %v records as new", len(lines))
	}

	for _, l := range lines {
		if err := m.handle(l); err != nil {
			return err
		}
	}
	return nil
}

func (m *Monitor) handle(line string) error {
	rec, err := snoop.ParseRecord(line)
	if err != nil {
		metrics.RecordAnomaly(metrics.AnomalyRecord)
		m.logger.Warnf("skipping record %q: %v", line, err)
		return nil
	}

	p, err := nci.Decode(nci.DirectionOf(rec.Received), rec.Data, rec.Timestamp)
	if err != nil {
		metrics.RecordAnomaly(metrics.AnomalyPacket)
		m.logger.Warnf("malformed packet %q: %v", line, err)
	}
	metrics.RecordPacket(p.MessageType.String())

	if !Visible(p, m.verbose) {
		return nil
	}

	s, err := m.format.Format(p, m.verbose)
	if err != nil {
		m.logger.Warnf("can't format packet %v: %v", p, err)
		return nil
	}

	_, err = fmt.Fprintln(m.out, s)
	return errors.Wrap(err, "can't write packet")
}
