package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/greencalc/internal/export"
	"github.com/jgoulah/greencalc/internal/ledger"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bills and appliances as an XLSX or PDF report",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "Report format (xlsx or pdf)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default greencalc-report.<format>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "xlsx" && exportFormat != "pdf" {
		return fmt.Errorf("unknown format: %s (available: xlsx, pdf)", exportFormat)
	}

	s, err := openStores()
	if err != nil {
		return err
	}

	bills, err := s.bills.Load()
	if err != nil {
		return fmt.Errorf("loading bills: %w", err)
	}
	appliances, err := s.appliances.Load()
	if err != nil {
		return fmt.Errorf("loading appliances: %w", err)
	}

	report := export.Report{
		Bills:       bills,
		Appliances:  appliances,
		Summary:     ledger.Summarize(bills, cfg.GetReferenceKWh()),
		Currency:    cfg.GetCurrency(),
		GeneratedAt: time.Now(),
	}

	var data []byte
	switch exportFormat {
	case "xlsx":
		data, err = export.XLSX(report)
	case "pdf":
		data, err = export.PDF(report)
	}
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	out := exportOut
	if out == "" {
		out = "greencalc-report." + exportFormat
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("✓ Wrote %s (%d bills, %d appliances)\n", out, len(bills), len(appliances))
	return nil
}
