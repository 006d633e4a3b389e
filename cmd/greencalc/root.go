package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jgoulah/greencalc/internal/cache"
	"github.com/jgoulah/greencalc/internal/config"
	"github.com/jgoulah/greencalc/internal/database"
	"github.com/jgoulah/greencalc/internal/inventory"
	"github.com/jgoulah/greencalc/internal/ledger"
	applog "github.com/jgoulah/greencalc/internal/log"
	"github.com/jgoulah/greencalc/internal/metrics"
)

var (
	cfgFile     string
	dbPath      string
	dataDir     string
	metricsFile string
	userName    string

	cfg        *config.Config
	appMetrics = metrics.New()
)

var rootCmd = &cobra.Command{
	Use:   "greencalc",
	Short: "Track household electricity bills and appliance consumption",
	Long: `GreenCalc logs electric bills and catalogs household appliances.
Bills and appliances are appended to plain files in the data directory, and
monthly consumption is estimated from the appliance inventory.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "publish journal file (default is <data-dir>/data.db)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the bill and appliance files")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics here on exit")
	rootCmd.PersistentFlags().StringVar(&userName, "user", defaultUser(), "name shown for the current session")
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "Admin"
}

// setup loads the configuration and initializes logging
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	applog.InitLogger(cfg.LogLevel)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if metricsFile == "" {
		return nil
	}
	return appMetrics.WriteTextfile(metricsFile)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDBPath returns the publish journal path
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(cfg.GetDataDir(), "data.db")
}

// openDB opens the publish journal
func openDB() (*database.DB, error) {
	path := getDBPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// stores bundles the two record stores of the data directory.
// They share one cache group, so a write to either invalidates both.
type stores struct {
	bills      *ledger.Store
	appliances *inventory.Store
}

// openStores builds the stores described by the loaded config
func openStores() (*stores, error) {
	billsPolicy, err := cfg.BillsPolicy()
	if err != nil {
		return nil, fmt.Errorf("bills: %w", err)
	}
	appliancesPolicy, err := cfg.AppliancesPolicy()
	if err != nil {
		return nil, fmt.Errorf("appliances: %w", err)
	}

	if err := os.MkdirAll(cfg.GetDataDir(), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	group := cache.NewGroup(cache.WithObserver(appMetrics))
	return &stores{
		bills: ledger.NewStore(cfg.BillsPath(),
			ledger.WithCacheGroup(group),
			ledger.WithMalformedPolicy(billsPolicy),
			ledger.WithSaveHook(appMetrics.Appended(ledger.CacheName)),
		),
		appliances: inventory.NewStore(cfg.AppliancesPath(),
			inventory.WithCacheGroup(group),
			inventory.WithMalformedPolicy(appliancesPolicy),
			inventory.WithSaveHook(appMetrics.Appended(inventory.CacheName)),
		),
	}, nil
}
