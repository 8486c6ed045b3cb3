package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rigado/nfcsnoop"
	"github.com/rigado/nfcsnoop/metrics"
	"github.com/rigado/nfcsnoop/monitor"
	"github.com/rigado/nfcsnoop/snoop"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		nfcsnoop.GetLogger().Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "nfcsnoop"
	app.Usage = "print NCI packets as they are appended to the NFC snoop log"
	app.HideVersion = true
	app.Flags = flags
	app.Action = run
	return app
}

var flags = []cli.Flag{
	cli.BoolFlag{
		Name:   "verbose, v",
		Usage:  "print every packet with its message type, data packets in full",
		EnvVar: "NFCSNOOP_VERBOSE",
	},
	cli.DurationFlag{
		Name:   "interval",
		Usage:  "idle time between two polls of the snoop log",
		Value:  monitor.DefaultInterval,
		EnvVar: "NFCSNOOP_INTERVAL",
	},
	cli.StringFlag{
		Name:   "format",
		Usage:  "output format, text or json",
		Value:  "text",
		EnvVar: "NFCSNOOP_FORMAT",
	},
	cli.StringFlag{
		Name:   "input",
		Usage:  "decode a saved dumpsys nfc report once instead of polling",
		EnvVar: "NFCSNOOP_INPUT",
	},
	cli.StringFlag{
		Name:   "metrics-addr",
		Usage:  "serve prometheus metrics on this address",
		EnvVar: "NFCSNOOP_METRICS_ADDR",
	},
	cli.StringFlag{
		Name:   "log-level",
		Usage:  "log level (debug, info, warn, error)",
		Value:  "info",
		EnvVar: "NFCSNOOP_LOG_LEVEL",
	},
	cli.StringFlag{
		Name:   "log-file",
		Usage:  "write logs to a rotated file instead of stderr",
		EnvVar: "NFCSNOOP_LOG_FILE",
	},
}

func run(c *cli.Context) error {
	if err := nfcsnoop.SetLogLevel(c.String("log-level")); err != nil {
		return err
	}
	if p := c.String("log-file"); p != "" {
		if err := nfcsnoop.SetLogFile(p); err != nil {
			return err
		}
	}
	logger := nfcsnoop.GetLogger()

	var format monitor.Formatter
	switch c.String("format") {
	case "text":
		format = monitor.TextFormatter{}
	case "json":
		format = monitor.JSONFormatter{}
	default:
		return errors.Errorf("unknown format %q", c.String("format"))
	}

	opts := []monitor.Option{
		monitor.OptVerbose(c.Bool("verbose")),
		monitor.OptInterval(c.Duration("interval")),
		monitor.OptFormatter(format),
		monitor.OptOutput(c.App.Writer),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// offline decode of a saved report
	if in := c.String("input"); in != "" {
		m, err := monitor.New(snoop.NewFileSource(in), append(opts, monitor.OptEmitBacklog())...)
		if err != nil {
			return err
		}
		return m.Poll(ctx)
	}

	if addr := c.String("metrics-addr"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Errorf("metrics server: %v", err)
			}
		}()
	}

	warnings, err := snoop.CheckLogMode(ctx, snoop.ExecRunner)
	if err != nil {
		logger.Warnf("can't check snoop log mode: %v", err)
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	m, err := monitor.New(snoop.NewDumpsysSource(snoop.ExecRunner), opts...)
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	logger.Info("watching nfc snoop log")
	err = m.Run(ctx)
	if ctx.Err() != nil {
		// interrupted
		return nil
	}
	return err
}
