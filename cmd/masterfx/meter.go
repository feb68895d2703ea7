package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/cwbudde/algo-master/internal/audiofile"
	"github.com/cwbudde/algo-master/measure/loudness"
)

func (a *app) meter(args []string) error {
	fs := flag.NewFlagSet("meter", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	asJSON := fs.Bool("json", false, "print the reading as JSON")
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: masterfx meter [flags] input.(wav|mp3) [...]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	for _, path := range fs.Args() {
		r, err := measureFile(path)
		if err != nil {
			return err
		}

		if *asJSON {
			data, err := json.Marshal(struct {
				File string `json:"file"`
				loudness.Reading
			}{path, r})
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, string(data))
			continue
		}
		fmt.Fprintf(a.stdout, "%s: %s\n", path, formatReading(r))
	}
	return nil
}

// measureFile meters a file at its own rate and channel layout.
func measureFile(path string) (loudness.Reading, error) {
	src, err := audiofile.Read(path)
	if err != nil {
		return loudness.Reading{}, err
	}

	m, err := loudness.NewMeter(
		loudness.WithSampleRate(float64(src.SampleRate)),
		loudness.WithChannels(len(src.Channels)),
	)
	if err != nil {
		return loudness.Reading{}, err
	}
	m.ProcessChannels(src.Channels)

	return m.Reading(), nil
}
