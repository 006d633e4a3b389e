package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/greencalc/internal/estimate"
	"github.com/jgoulah/greencalc/internal/ledger"
)

var listCmd = &cobra.Command{
	Use:       "list [bills|appliances]",
	Short:     "List stored bills and appliances",
	Long:      `Displays the bill history with its average against the regional reference, and the appliance inventory with monthly estimates.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bills", "appliances"},
	RunE:      runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	what := ""
	if len(args) == 1 {
		what = args[0]
	}

	if what == "" || what == "bills" {
		if err := listBills(s); err != nil {
			return err
		}
	}
	if what == "" || what == "appliances" {
		if err := listAppliances(s); err != nil {
			return err
		}
	}
	return nil
}

func listBills(s *stores) error {
	bills, err := s.bills.Load()
	if err != nil {
		return fmt.Errorf("loading bills: %w", err)
	}

	if len(bills) == 0 {
		fmt.Println("No bills recorded yet. Start with 'greencalc bill add'.")
		return nil
	}

	currency := cfg.GetCurrency()
	fmt.Printf("\nBill History:\n")
	fmt.Println("----------------------------------------")
	fmt.Printf("%-12s  %10s  %14s\n", "Date", "kWh", "Cost ("+currency+")")
	fmt.Println("----------------------------------------")
	for _, b := range bills {
		fmt.Printf("%-12s  %10.2f  %14s\n", b.DateString(), b.KWh, formatAmount(b.Cost))
	}
	fmt.Println("----------------------------------------")

	sum := ledger.Summarize(bills, cfg.GetReferenceKWh())
	fmt.Printf("Average monthly consumption: %.1f kWh (%d bills)\n", sum.AverageKWh, sum.Count)
	fmt.Printf("Regional average: %.0f kWh (delta %+.1f kWh)\n", sum.ReferenceKWh, sum.DeltaKWh)
	if sum.DeltaKWh < 0 {
		fmt.Println("You consume less than the regional average. Well done!")
	}
	return nil
}

func listAppliances(s *stores) error {
	appliances, err := s.appliances.Load()
	if err != nil {
		return fmt.Errorf("loading appliances: %w", err)
	}

	if len(appliances) == 0 {
		fmt.Println("Your inventory is empty. Add one with 'greencalc appliance add'.")
		return nil
	}

	fmt.Printf("\nAppliance Inventory:\n")
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("%-28s  %10s  %8s  %10s\n", "Appliance", "Usage", "Months", "kWh/month")
	fmt.Println("------------------------------------------------------------")
	for _, a := range appliances {
		label := fmt.Sprintf("%dx %s", a.Quantity, a.Kind)
		usage := fmt.Sprintf("%gh/day", a.HoursPerDay)
		fmt.Printf("%-28s  %10s  %5d/12  %10.2f\n", label, usage, a.MonthsPerYear, float64(a.Quantity)*estimate.MonthlyKWh(a))
	}
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Estimated total: %.2f kWh/month (%d appliances)\n", estimate.InventoryTotal(appliances), len(appliances))
	return nil
}
