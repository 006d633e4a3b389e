package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/greencalc/pkg/models"
)

var (
	billKWh  float64
	billCost float64
)

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Record electric bills",
}

var billAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a bill dated today",
	Long:  `Appends a bill to the ledger. Consumption must be greater than zero.`,
	Args:  cobra.NoArgs,
	RunE:  runBillAdd,
}

func init() {
	billAddCmd.Flags().Float64Var(&billKWh, "kwh", 0, "Consumption on the bill (kWh)")
	billAddCmd.Flags().Float64Var(&billCost, "cost", 0, "Total cost of the bill")
	_ = billAddCmd.MarkFlagRequired("kwh")
	billCmd.AddCommand(billAddCmd)
	rootCmd.AddCommand(billCmd)
}

func runBillAdd(cmd *cobra.Command, args []string) error {
	if err := models.ValidateBill(billKWh, billCost); err != nil {
		return err
	}

	s, err := openStores()
	if err != nil {
		return err
	}

	bill, err := s.bills.Save(billKWh, billCost)
	if err != nil {
		return fmt.Errorf("saving bill: %w", err)
	}

	fmt.Printf("✓ Bill recorded for %s (%s kWh, %s %s)\n",
		bill.DateString(), formatAmount(bill.KWh), cfg.GetCurrency(), formatAmount(bill.Cost))
	return nil
}

// formatAmount renders a number with thousands separators and two decimals
func formatAmount(f float64) string {
	return humanize.FormatFloat("#,###.##", f)
}
