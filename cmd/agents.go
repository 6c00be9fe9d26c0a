package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dualcred/ledger-cli/internal/report"
)

var agentsFlags struct {
	from  string
	to    string
	agent string
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Per-agent totals over an optional date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		filter, err := parseFilter(agentsFlags.from, agentsFlags.to, agentsFlags.agent)
		if err != nil {
			return err
		}

		res, err := env.Engine.Load(cmd.Context())
		if err != nil {
			return err
		}

		summary := report.Summarize(res.Set, filter)
		fmt.Printf("%-20s %6s %6s %14s %14s %12s %12s %14s\n",
			"AGENT", "TX", "CLI", "TRANSACTED", "RELEASED", "COMMISSION", "EXTRA", "DUALCRED")
		for _, a := range summary.Agents {
			fmt.Printf("%-20s %6d %6d %14s %14s %12s %12s %14s\n",
				a.Agent, a.Transactions, a.Beneficiaries,
				a.Transacted.StringFixed(2), a.Released.StringFixed(2),
				a.Commission.StringFixed(2), a.Extra.StringFixed(2),
				a.Dualcred.StringFixed(2))
		}
		o := summary.Overall
		fmt.Printf("%-20s %6d %6d %14s %14s %12s %12s %14s\n",
			"TOTAL", o.Transactions, o.Beneficiaries,
			o.Transacted.StringFixed(2), o.Released.StringFixed(2),
			o.Commission.StringFixed(2), o.Extra.StringFixed(2),
			o.Dualcred.StringFixed(2))
		return nil
	},
}

func init() {
	agentsCmd.Flags().StringVar(&agentsFlags.from, "from", "", "start date (YYYY-MM-DD)")
	agentsCmd.Flags().StringVar(&agentsFlags.to, "to", "", "end date (YYYY-MM-DD)")
	agentsCmd.Flags().StringVar(&agentsFlags.agent, "agent", "", "limit to one agent")
	rootCmd.AddCommand(agentsCmd)
}
