package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/dualcred/ledger-cli/internal/ledger"
	"github.com/dualcred/ledger-cli/internal/schema"
	"github.com/dualcred/ledger-cli/internal/workbook"
)

var importCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Merge transactions from another twelve-partition workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		src := workbook.NewStore(args[0])
		if !src.Exists() {
			return eris.Errorf("import: %s does not exist", args[0])
		}

		norm := schema.NewNormalizer(cfg.Ledger.DefaultAgent)
		batch, err := ledger.Load(src, norm)
		if err != nil {
			return err
		}
		for _, d := range batch.Diagnostics {
			fmt.Printf("note: %s\n", d)
		}

		merge, err := env.Engine.Submit(cmd.Context(), batch.Set)
		if err != nil {
			return err
		}
		if merge.NothingToMerge {
			fmt.Println("nothing to merge")
			return nil
		}
		fmt.Printf("merged %d record(s): %d added, %d duplicate(s) dropped across %d partition(s)\n",
			batch.Set.Len(), merge.Added, merge.Duplicates, len(merge.Touched))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
