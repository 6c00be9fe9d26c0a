package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dualcred/ledger-cli/internal/model"
)

var showPartition string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Load the ledger and print a per-partition summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.Engine.Load(cmd.Context())
		if err != nil {
			return err
		}

		byPartition := res.Set.ByPartition()
		for _, label := range model.Partitions() {
			if showPartition != "" && showPartition != string(label) {
				continue
			}
			records := byPartition[label]
			fmt.Printf("%s  %d record(s)\n", label, len(records))
			for _, r := range records {
				fmt.Printf("  %s  %-20s  %-12s  T=%s R=%s dualcred=%s\n",
					r.Date.Format("2006-01-02"), r.Beneficiary, r.Agent,
					r.Transacted.StringFixed(2), r.Released.StringFixed(2),
					r.Dualcred.StringFixed(2),
				)
			}
		}
		fmt.Printf("total: %d record(s)\n", res.Set.Len())

		for _, d := range res.Diagnostics {
			fmt.Printf("note: %s\n", d)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showPartition, "partition", "", "limit output to one partition (JAN..DEZ)")
	rootCmd.AddCommand(showCmd)
}
