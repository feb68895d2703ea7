package audiofile

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-master/dsp/effectchain"
)

// LoadImpulseResponses decodes the impulse response files concurrently,
// folds each to mono and converts it to sampleRate. Table order follows
// paths, so CAB_SIM "ir" index i selects paths[i].
func LoadImpulseResponses(paths []string, sampleRate int) (effectchain.IRTable, error) {
	table := make(effectchain.IRTable, len(paths))

	var g errgroup.Group
	g.SetLimit(4)

	for i, path := range paths {
		g.Go(func() error {
			a, err := Read(path)
			if err != nil {
				return err
			}
			a, err = a.Resample(sampleRate)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			table[i] = a.Conform(1)[0]
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return table, nil
}
