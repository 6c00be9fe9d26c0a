package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dualcred/ledger-cli/internal/model"
	"github.com/dualcred/ledger-cli/internal/schema"
)

var addFlags struct {
	date         string
	beneficiary  string
	agent        string
	transacted   string
	released     string
	interest     string
	commission   string
	extra        string
	pctAgent     string
	installments string
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit one transaction into the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		batch := model.NewRecordSet()
		batch.Append(model.Record{
			Date:         schema.ParseDate(addFlags.date),
			Beneficiary:  addFlags.beneficiary,
			Agent:        addFlags.agent,
			Transacted:   schema.ParseDecimal(addFlags.transacted),
			Released:     schema.ParseDecimal(addFlags.released),
			InterestRate: schema.ParseDecimal(addFlags.interest),
			Commission:   schema.ParseDecimal(addFlags.commission),
			Extra:        schema.ParseDecimal(addFlags.extra),
			PctAgent:     schema.ParseDecimal(addFlags.pctAgent),
			Installments: schema.ParseDecimal(addFlags.installments),
		})

		merge, err := env.Engine.Submit(cmd.Context(), batch)
		if err != nil {
			return err
		}
		if merge.Duplicates > 0 {
			fmt.Println("transaction already present, nothing added")
			return nil
		}
		fmt.Printf("added 1 transaction to %s (%d total)\n", merge.Touched[0], merge.Set.Len())
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addFlags.date, "date", "", "transaction date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addFlags.beneficiary, "beneficiary", "", "beneficiary name")
	addCmd.Flags().StringVar(&addFlags.agent, "agent", "", "agent (defaults to configured fallback)")
	addCmd.Flags().StringVar(&addFlags.transacted, "transacted", "0", "transacted value")
	addCmd.Flags().StringVar(&addFlags.released, "released", "0", "released value")
	addCmd.Flags().StringVar(&addFlags.interest, "interest", "0", "interest rate value")
	addCmd.Flags().StringVar(&addFlags.commission, "commission", "0", "agent commission")
	addCmd.Flags().StringVar(&addFlags.extra, "extra", "0", "agent extra")
	addCmd.Flags().StringVar(&addFlags.pctAgent, "pct-agent", "0", "agent percentage")
	addCmd.Flags().StringVar(&addFlags.installments, "installments", "0", "installment count")
	rootCmd.AddCommand(addCmd)
}
