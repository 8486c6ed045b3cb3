package snoop

import (
	"context"
	"fmt"
	"strings"
)

// Properties that select the NFC snoop log mode, newest name first.
var LogModeProperties = []string{
	"persist.nfc.snoop_log_mode",
	"persist.nfc.nfcsnooplogmode",
}

const logModeEnum = "enum full filtered"

// CheckLogMode inspects the snoop log mode properties and returns a
// warning for each setting that limits what ends up in the log. Only the
// first property the system knows about is inspected.
func CheckLogMode(ctx context.Context, run Runner) ([]string, error) {
	if run == nil {
		run = ExecRunner
	}

	for _, p := range LogModeProperties {
		typ, err := run(ctx, "getprop", "-T", p)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(typ)) != logModeEnum {
			continue
		}

		mode, err := run(ctx, "getprop", p)
		if err != nil {
			return nil, err
		}

		switch strings.TrimSpace(string(mode)) {
		case "":
			return []string{fmt.Sprintf("%v is not set", p)}, nil
		case "filtered":
			return []string{fmt.Sprintf("%v is set to \"filtered\"", p)}, nil
		default:
			return nil, nil
		}
	}

	return []string{"could not detect snoop log mode"}, nil
}
