package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/dsp/param"
)

type moduleInfo struct {
	Type       effectchain.ModuleType `json:"type"`
	Parameters []param.Descriptor     `json:"parameters"`
}

func (a *app) modules(args []string) error {
	fs := flag.NewFlagSet("modules", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	asJSON := fs.Bool("json", false, "print the table as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg := effectchain.DefaultRegistry()
	infos := make([]moduleInfo, 0, len(reg.Types()))
	for _, t := range reg.Types() {
		infos = append(infos, moduleInfo{Type: t, Parameters: reg.Descriptors(t)})
	}

	if *asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Module\tParameter\tDefault\tMin\tMax\tStepped\n")
	fmt.Fprintf(tw, "------\t---------\t-------\t---\t---\t-------\n")
	for _, info := range infos {
		if len(info.Parameters) == 0 {
			fmt.Fprintf(tw, "%s\t-\t\t\t\t\n", info.Type)
			continue
		}
		for _, d := range info.Parameters {
			stepped := ""
			if d.Stepped {
				stepped = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n", info.Type, d.Name, d.Default, d.Min, d.Max, stepped)
		}
	}
	return tw.Flush()
}
