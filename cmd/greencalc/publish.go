package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/greencalc/internal/estimate"
	"github.com/jgoulah/greencalc/internal/ledger"
	"github.com/jgoulah/greencalc/internal/publisher"
	"github.com/jgoulah/greencalc/pkg/models"
)

var (
	publishSince string
	publishUntil string
	publishAll   bool
	publishLimit int
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish bills and consumption estimates to Home Assistant",
	Long: `Publishes recorded bills to Home Assistant via HTTP API and the household
summary (average bill and appliance estimate) to MQTT. Published bills are
remembered in the journal database and skipped on the next run.`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishSince, "since", "", "Only publish bills since this date (YYYY-MM-DD or relative like 30d)")
	publishCmd.Flags().StringVar(&publishUntil, "until", "", "Only publish bills until this date (YYYY-MM-DD)")
	publishCmd.Flags().BoolVar(&publishAll, "all", false, "Force republish all bills (ignore the journal)")
	publishCmd.Flags().IntVar(&publishLimit, "limit", 0, "Limit number of bills to publish (0 = no limit)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	if !cfg.HomeAssistant.Enabled && !cfg.MQTT.Enabled {
		return fmt.Errorf("neither Home Assistant nor MQTT is enabled in config")
	}

	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	s, err := openStores()
	if err != nil {
		return err
	}

	bills, err := s.bills.Load()
	if err != nil {
		return fmt.Errorf("loading bills: %w", err)
	}

	if pub.HAEnabled() {
		if err := publishBills(pub, bills); err != nil {
			return err
		}
	}

	if pub.MQTTEnabled() {
		appliances, err := s.appliances.Load()
		if err != nil {
			return fmt.Errorf("loading appliances: %w", err)
		}
		summary := publisher.Summary{
			AverageBillKWh: ledger.Summarize(bills, cfg.GetReferenceKWh()).AverageKWh,
			EstimateKWh:    estimate.InventoryTotal(appliances),
		}
		if err := pub.PublishSummary(summary); err != nil {
			return fmt.Errorf("publishing summary: %w", err)
		}
		fmt.Printf("✓ Published summary (average %.1f kWh, estimate %.1f kWh/month)\n", summary.AverageBillKWh, summary.EstimateKWh)
	}

	return nil
}

func publishBills(pub *publisher.Publisher, bills []models.BillRecord) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	data := bills
	if !publishAll {
		// Default: only publish bills missing from the journal
		data, err = db.Unpublished(bills)
		if err != nil {
			return fmt.Errorf("listing unpublished bills: %w", err)
		}
	}

	if len(data) == 0 {
		if publishAll {
			fmt.Println("No bills found")
		} else {
			fmt.Println("No unpublished bills found")
		}
		return nil
	}

	filtered, err := filterByDate(data, publishSince, publishUntil)
	if err != nil {
		return err
	}
	if len(filtered) == 0 {
		fmt.Println("No bills in date range")
		return nil
	}

	if publishLimit > 0 && len(filtered) > publishLimit {
		filtered = filtered[:publishLimit]
		fmt.Printf("Limiting to %d bills (--limit flag)\n", publishLimit)
	}

	fmt.Printf("Publishing %d bills...\n", len(filtered))
	published := 0
	for i, bill := range filtered {
		fmt.Printf("[%d/%d] Publishing %s (%.2f kWh)... ", i+1, len(filtered), bill.DateString(), bill.KWh)
		if err := pub.PublishBill(bill); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}

		if err := db.MarkPublished(bill); err != nil {
			fmt.Printf("✓ (warning: failed to mark as published: %v)\n", err)
		} else {
			fmt.Printf("✓\n")
		}
		published++
	}

	fmt.Printf("Successfully published %d/%d bills\n", published, len(filtered))
	return nil
}

// filterByDate keeps bills within the optional since/until bounds
func filterByDate(bills []models.BillRecord, since, until string) ([]models.BillRecord, error) {
	var sinceDate, untilDate *time.Time
	if since != "" {
		d, err := parseDate(since, time.Now())
		if err != nil {
			return nil, fmt.Errorf("parsing --since date: %w", err)
		}
		sinceDate = &d
	}
	if until != "" {
		d, err := parseDate(until, time.Now())
		if err != nil {
			return nil, fmt.Errorf("parsing --until date: %w", err)
		}
		untilDate = &d
	}
	if sinceDate == nil && untilDate == nil {
		return bills, nil
	}

	var out []models.BillRecord
	for _, b := range bills {
		if sinceDate != nil && b.Date.Before(*sinceDate) {
			continue
		}
		if untilDate != nil && b.Date.After(*untilDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// parseDate parses a date string in either YYYY-MM-DD format or relative format (e.g., "7d")
func parseDate(dateStr string, now time.Time) (time.Time, error) {
	// Try absolute date format first
	t, err := time.ParseInLocation(models.DateLayout, dateStr, time.Local)
	if err == nil {
		return t, nil
	}

	// Try relative format (e.g., "7d" for 7 days ago)
	if len(dateStr) > 1 && dateStr[len(dateStr)-1] == 'd' {
		daysStr := dateStr[:len(dateStr)-1]
		var days int
		if _, err := fmt.Sscanf(daysStr, "%d", &days); err == nil {
			return now.AddDate(0, 0, -days), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD or Nd for N days ago)", dateStr)
}
