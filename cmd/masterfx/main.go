// Command masterfx renders, plays and meters audio through a mastering
// rack.
//
// Usage:
//
//	masterfx [-config file] [-log-level level] <command> [flags] [args]
//
// Commands:
//
//	render   process files offline and write WAV output
//	play     play a file through the rack in real time
//	meter    print loudness and peak values of a file
//	modules  list module types and their parameters
//
// Examples:
//
//	masterfx render -rack master.json -o out.wav mix.wav
//	masterfx -config studio.yaml render -o mastered/ a.wav b.wav c.wav
//	masterfx play -rack master.json mix.mp3
//	masterfx meter mix.wav
//	masterfx modules -json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-master/internal/config"
	"github.com/cwbudde/algo-master/internal/logging"
)

// errUsage marks errors that already printed usage.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			logrus.WithError(err).Error("masterfx failed")
		}
		stop()
		os.Exit(1)
	}
}

// app carries the state shared by all commands.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("masterfx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML configuration file")
	level := fs.String("log-level", "", "log level: debug, info, warn or error (overrides the config)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: masterfx [flags] <command> [command flags] [args]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  render   process files offline and write WAV output\n")
		fmt.Fprintf(stderr, "  play     play a file through the rack in real time\n")
		fmt.Fprintf(stderr, "  meter    print loudness and peak values of a file\n")
		fmt.Fprintf(stderr, "  modules  list module types and their parameters\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.New()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	if *level != "" {
		cfg.LogLevel = *level
	}

	log, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}

	a := &app{cfg: cfg, log: log, stdout: stdout, stderr: stderr}

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "render":
		return a.render(ctx, rest)
	case "play":
		return a.play(ctx, rest)
	case "meter":
		return a.meter(rest)
	case "modules":
		return a.modules(rest)
	default:
		fmt.Fprintf(stderr, "masterfx: unknown command %q\n\n", cmd)
		fs.Usage()
		return errUsage
	}
}
