package monitor

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/nfcsnoop"
)

// An Option is a configuration function, which configures the monitor.
type Option func(*Monitor) error

// OptVerbose emits every packet with its message type instead of data packets only.
func OptVerbose(v bool) Option {
	return func(m *Monitor) error {
		m.verbose = v
		return nil
	}
}

// OptOutput sets where decoded packets are written.
func OptOutput(w io.Writer) Option {
	return func(m *Monitor) error {
		if w == nil {
			return errors.New("nil output")
		}
		m.out = w
		return nil
	}
}

// OptFormatter sets the packet line format.
func OptFormatter(f Formatter) Option {
	return func(m *Monitor) error {
		if f == nil {
			return errors.New("nil formatter")
		}
		m.format = f
		return nil
	}
}

// OptInterval sets the idle time between two polls.
func OptInterval(d time.Duration) Option {
	return func(m *Monitor) error {
		if d < 0 {
			return errors.Errorf("negative poll interval %v", d)
		}
		m.interval = d
		return nil
	}
}

// OptLogger sets the logger for warnings about the log and its records.
func OptLogger(l nfcsnoop.Logger) Option {
	return func(m *Monitor) error {
		m.logger = l
		return nil
	}
}

// OptEmitBacklog makes the first poll report every packet already in the
// log instead of only recording a baseline.
func OptEmitBacklog() Option {
	return func(m *Monitor) error {
		m.tail.Prime()
		return nil
	}
}
