package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the store directory and skeleton workbook if absent",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Engine.Bootstrap(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("store ready at %s\n", env.Engine.Store().Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
