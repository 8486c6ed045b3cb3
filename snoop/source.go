package snoop

import (
	"context"
	"io/ioutil"
	"os/exec"

	"github.com/pkg/errors"
)

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands on the local system.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, errors.Wrapf(err, "exec %v", name)
	}
	return out, nil
}

// Decode turns the output of the diagnostics command into the rendered
// text dump of every packet in the snoop log summary.
func Decode(out string) (string, error) {
	block, err := ExtractSummary(out)
	if err != nil {
		return "", err
	}

	hdr, raw, err := Inflate(block)
	if err != nil {
		return "", err
	}

	rr, err := ParseRecords(hdr, raw)
	if err != nil {
		return "", err
	}

	return Render(rr), nil
}

// DumpsysSource reads the snoop log from `dumpsys nfc` on each call.
type DumpsysSource struct {
	run Runner
}

// NewDumpsysSource returns a source using run, or ExecRunner when run is nil.
func NewDumpsysSource(run Runner) *DumpsysSource {
	if run == nil {
		run = ExecRunner
	}
	return &DumpsysSource{run: run}
}

// Dump returns the full rendered log.
func (s *DumpsysSource) Dump(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "dumpsys", "nfc")
	if err != nil {
		return "", errors.Wrap(err, "can't read snoop log")
	}

	dump, err := Decode(string(out))
	return dump, errors.Wrap(err, "can't decode snoop log")
}

// FileSource reads a saved `dumpsys nfc` output, e.g. from a bug report.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Dump returns the full rendered log stored in the file.
func (s *FileSource) Dump(ctx context.Context) (string, error) {
	in, err := ioutil.ReadFile(s.path)
	if err != nil {
		return "", errors.Wrap(err, "can't read snoop log")
	}

	dump, err := Decode(string(in))
	return dump, errors.Wrapf(err, "can't decode snoop log %v", s.path)
}
