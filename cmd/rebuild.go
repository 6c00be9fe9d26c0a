package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Regenerate the whole store from its normalized contents",
	Long:  "Loads every partition, reconciles drifted headers onto the current schema, recomputes derived fields, and rewrites all twelve sheets atomically.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.Engine.Rebuild(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("rebuilt %s with %d record(s)\n", env.Engine.Store().Path(), res.Set.Len())
		for _, d := range res.Diagnostics {
			fmt.Printf("note: %s\n", d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
