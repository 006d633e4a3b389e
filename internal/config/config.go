package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jgoulah/greencalc/internal/rowpolicy"
)

// Default backing file names, kept compatible with existing data directories
const (
	DefaultBillsFile      = "registros.txt"
	DefaultAppliancesFile = "electrodomesticos.txt"
	DefaultReferenceKWh   = 250.0
	DefaultCurrency       = "ARS"
)

// Config holds the application configuration
type Config struct {
	DataDir        string        `yaml:"data_dir,omitempty"`
	BillsFile      string        `yaml:"bills_file,omitempty"`
	AppliancesFile string        `yaml:"appliances_file,omitempty"`
	ReferenceKWh   float64       `yaml:"reference_monthly_kwh,omitempty"` // Regional average used for comparison (fallback: 250)
	Currency       string        `yaml:"currency,omitempty"`
	LogLevel       string        `yaml:"log_level,omitempty"`
	MalformedRows  MalformedRows `yaml:"malformed_rows,omitempty"`
	MQTT           MQTTConfig    `yaml:"mqtt,omitempty"`
	HomeAssistant  HAConfig      `yaml:"home_assistant,omitempty"`
}

// MalformedRows selects the malformed-row policy per store (abort, skip or empty)
type MalformedRows struct {
	Bills      string `yaml:"bills,omitempty"`
	Appliances string `yaml:"appliances,omitempty"`
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default "greencalc"
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://homeassistant.local:5050"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.greencalc_bill_kwh"
}

// Load reads the config file, then applies .env and environment overrides
func Load(configPath string) (*Config, error) {
	cfg, err := readFile(configPath)
	if err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	return cfg, nil
}

func readFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GREENCALC_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("GREENCALC_LOG"); v != "" {
		c.LogLevel = v
	}
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDataDir returns the directory holding the backing files, defaulting to the working directory
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}

// BillsPath returns the bill ledger path
func (c *Config) BillsPath() string {
	return c.resolve(c.BillsFile, DefaultBillsFile)
}

// AppliancesPath returns the appliance inventory path
func (c *Config) AppliancesPath() string {
	return c.resolve(c.AppliancesFile, DefaultAppliancesFile)
}

func (c *Config) resolve(name, def string) string {
	if name == "" {
		name = def
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.GetDataDir(), name)
}

// GetReferenceKWh returns the comparison average with a default of 250 kWh
func (c *Config) GetReferenceKWh() float64 {
	if c.ReferenceKWh <= 0 {
		return DefaultReferenceKWh
	}
	return c.ReferenceKWh
}

// GetCurrency returns the currency label shown next to costs
func (c *Config) GetCurrency() string {
	if c.Currency == "" {
		return DefaultCurrency
	}
	return c.Currency
}

// BillsPolicy returns the ledger's malformed-row policy (default abort)
func (c *Config) BillsPolicy() (rowpolicy.Policy, error) {
	return rowpolicy.Parse(c.MalformedRows.Bills, rowpolicy.Abort)
}

// AppliancesPolicy returns the inventory's malformed-row policy (default empty)
func (c *Config) AppliancesPolicy() (rowpolicy.Policy, error) {
	return rowpolicy.Parse(c.MalformedRows.Appliances, rowpolicy.Empty)
}

// GetTopicPrefix returns the MQTT topic prefix
func (m MQTTConfig) GetTopicPrefix() string {
	if m.TopicPrefix == "" {
		return "greencalc"
	}
	return m.TopicPrefix
}
