package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/algo-master/engine"
	"github.com/cwbudde/algo-master/internal/playback"
)

func (a *app) play(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	rackPath := fs.String("rack", "", "JSON rack file (overrides the config)")
	loop := fs.Bool("loop", false, "repeat the input until stopped")
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: masterfx play [flags] input.(wav|mp3)\n\n")
		fmt.Fprintf(a.stderr, "Keys: 1-9 toggle bypass of the n-th module, q quits.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	rack, err := a.rack(*rackPath)
	if err != nil {
		return err
	}
	reg, err := a.registry()
	if err != nil {
		return err
	}
	src, err := a.input(fs.Arg(0))
	if err != nil {
		return err
	}
	eng, err := a.newEngine(reg, rack)
	if err != nil {
		return err
	}

	source := playback.NewEngineSource(eng, src)
	source.Loop = *loop
	stream := playback.NewStream(source, a.cfg.Engine.Channels, a.cfg.Engine.BlockSize)

	player, err := playback.NewPlayer(int(a.cfg.Engine.SampleRate), a.cfg.Engine.Channels, stream)
	if err != nil {
		return err
	}
	defer player.Close()

	keys, restore := readKeys()
	defer restore()

	player.Play()
	a.printRack(eng)

	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(a.stdout, "\r\n")
			return nil
		case k := <-keys:
			switch {
			case k == 'q' || k == 3:
				fmt.Fprint(a.stdout, "\r\n")
				return nil
			case k >= '1' && k <= '9':
				a.toggleBypass(eng, int(k-'1'))
			}
		case <-tick.C:
			snap := eng.Snapshot()
			fmt.Fprintf(a.stdout, "\r%7.1fs  M %6.1f  S %6.1f  I %6.1f LUFS ",
				float64(snap.Position)/a.cfg.Engine.SampleRate,
				snap.Loudness.Momentary, snap.Loudness.ShortTerm, snap.Loudness.Integrated)
			if stream.Finished() && !player.IsPlaying() {
				fmt.Fprint(a.stdout, "\r\n")
				return nil
			}
		}
	}
}

func (a *app) printRack(eng *engine.Engine) {
	for i, m := range eng.Rack() {
		state := "on"
		if m.Bypass {
			state = "bypassed"
		}
		fmt.Fprintf(a.stdout, "%d  %-10s %-20s %s\r\n", i+1, m.ID, m.Type, state)
	}
}

// toggleBypass flips the bypass flag of the n-th module. The node keeps its
// state, so toggling is click-free apart from the effect itself.
func (a *app) toggleBypass(eng *engine.Engine, n int) {
	rack := eng.Rack()
	if n >= len(rack) {
		return
	}
	rack[n].Bypass = !rack[n].Bypass
	if _, err := eng.UpdateRack(rack); err != nil {
		a.log.WithError(err).Warn("bypass toggle rejected")
		return
	}

	state := "on"
	if rack[n].Bypass {
		state = "bypassed"
	}
	fmt.Fprintf(a.stdout, "\r\n%s %s\r\n", rack[n].ID, state)
}

// readKeys switches stdin to raw mode when it is a terminal and delivers
// single key presses. restore undoes the mode change.
func readKeys() (<-chan byte, func()) {
	keys := make(chan byte, 8)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return keys, func() {}
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return keys, func() {}
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 {
				keys <- buf[0]
			}
		}
	}()

	return keys, func() { _ = term.Restore(fd, old) }
}
