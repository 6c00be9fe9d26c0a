package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var opsLimit int

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Show recent engine operations from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if env.Journal == nil {
			return eris.New("ops: journal is not configured")
		}

		entries, err := env.Journal.List(cmd.Context(), opsLimit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			status := "ok"
			if e.Error != "" {
				status = "error: " + e.Error
			}
			fmt.Printf("%s  %-9s in=%-5d out=%-5d partitions=%-2d %5dms  %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind,
				e.RecordsIn, e.RecordsOut, e.Partitions, e.DurationMS, status)
		}
		return nil
	},
}

func init() {
	opsCmd.Flags().IntVar(&opsLimit, "limit", 20, "number of entries to show")
	rootCmd.AddCommand(opsCmd)
}
