package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/mkrall/hapt/internal/output"
	"github.com/mkrall/hapt/pattern"
)

// PatternsCmd lists the preset pattern table.
type PatternsCmd struct{}

// Run executes the patterns command
func (c *PatternsCmd) Run(globals *Globals) error {
	names := pattern.Names()

	if globals.Format == "ndjson" {
		writer := output.NewNDJSONWriter(globals.Stdout)
		for _, name := range names {
			p, _ := pattern.Named(name)
			totalMs := int(p.Total().Milliseconds())
			if err := writer.WritePattern(name, p.Segments(), p.Duration(), totalMs); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewTable(globals.Stdout)
	table.Header("Name", "Pattern", "Total")
	for _, name := range names {
		p, _ := pattern.Named(name)
		table.Append([]string{
			name,
			p.String(),
			strconv.FormatInt(p.Total().Milliseconds(), 10) + "ms",
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
