package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/dualcred/ledger-cli/internal/report"
)

var exportFlags struct {
	out   string
	from  string
	to    string
	agent string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a filtered copy of the ledger as a new workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		filter, err := parseFilter(exportFlags.from, exportFlags.to, exportFlags.agent)
		if err != nil {
			return err
		}

		res, err := env.Engine.Load(cmd.Context())
		if err != nil {
			return err
		}

		filtered := filter.Apply(res.Set)
		data, err := env.Engine.Export(cmd.Context(), filtered)
		if err != nil {
			return err
		}

		if err := os.WriteFile(exportFlags.out, data, 0o644); err != nil {
			return eris.Wrapf(err, "export: write %s", exportFlags.out)
		}
		fmt.Printf("exported %d record(s) to %s\n", filtered.Len(), exportFlags.out)
		return nil
	},
}

// parseFilter builds a report filter from flag values.
func parseFilter(from, to, agent string) (report.Filter, error) {
	var f report.Filter
	f.Agent = agent
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return f, eris.Wrapf(err, "parse --from %q", from)
		}
		f.From = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return f, eris.Wrapf(err, "parse --to %q", to)
		}
		f.To = t
	}
	return f, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportFlags.out, "out", "export.xlsx", "output file path")
	exportCmd.Flags().StringVar(&exportFlags.from, "from", "", "start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportFlags.to, "to", "", "end date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportFlags.agent, "agent", "", "limit to one agent")
	rootCmd.AddCommand(exportCmd)
}
