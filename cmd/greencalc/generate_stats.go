package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/greencalc/internal/publisher"
)

var generateStatsCmd = &cobra.Command{
	Use:   "generate-stats",
	Short: "Generate statistics in Home Assistant from published bills",
	Long:  `Calls the AppDaemon endpoint to compile statistics from the backfilled bill states. Run this after publishing to populate the Energy dashboard.`,
	Args:  cobra.NoArgs,
	RunE:  runGenerateStats,
}

func init() {
	rootCmd.AddCommand(generateStatsCmd)
}

func runGenerateStats(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Generate Statistics started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	if !cfg.HomeAssistant.Enabled {
		return fmt.Errorf("Home Assistant is not enabled in config")
	}

	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	fmt.Printf("Generating statistics for %s...\n", cfg.HomeAssistant.EntityID)
	result, err := pub.GenerateStatistics()
	if err != nil {
		return err
	}

	fmt.Printf("✓ Statistics generated successfully\n")
	fmt.Printf("  - Inserted: %d new statistics records\n", result.Inserted)
	fmt.Printf("  - Updated: %d existing statistics records\n", result.Updated)
	fmt.Printf("  - Total hours: %d\n", result.TotalHours)
	return nil
}
