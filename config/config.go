package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete toll collection configuration
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Map     MapConfig     `json:"map" yaml:"map"`
	Ledger  LedgerConfig  `json:"ledger" yaml:"ledger"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// ServerConfig contains the ingest gateway parameters
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// MapConfig locates the road network and the tolled corridor within it
type MapConfig struct {
	EdgesFile  string  `json:"edges_file" yaml:"edges_file"`
	TolledRoad string  `json:"tolled_road" yaml:"tolled_road"`
	MaxSnapKm  float64 `json:"max_snap_km" yaml:"max_snap_km"`
}

// LedgerConfig contains wallet persistence parameters
type LedgerConfig struct {
	Type      string `json:"type" yaml:"type"` // "csv" or "sqlite"
	UsersFile string `json:"users_file,omitempty" yaml:"users_file,omitempty"`
	DBPath    string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// JournalConfig contains transaction sink parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Map.EdgesFile == "" {
		return fmt.Errorf("map.edges_file is required")
	}
	if c.Map.TolledRoad == "" {
		return fmt.Errorf("map.tolled_road is required")
	}
	if c.Map.MaxSnapKm <= 0 {
		return fmt.Errorf("map.max_snap_km must be positive")
	}
	if c.Ledger.Type != "csv" && c.Ledger.Type != "sqlite" {
		return fmt.Errorf("ledger.type must be 'csv' or 'sqlite'")
	}
	if c.Ledger.Type == "csv" && c.Ledger.UsersFile == "" {
		return fmt.Errorf("ledger.users_file required for CSV type")
	}
	if c.Ledger.Type == "sqlite" && c.Ledger.DBPath == "" {
		return fmt.Errorf("ledger.db_path required for SQLite type")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.Dir == "" {
		return fmt.Errorf("journal.dir required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Map: MapConfig{
			EdgesFile:  "./edges.csv",
			TolledRoad: "Doddaballapur Road",
			MaxSnapKm:  0.5,
		},
		Ledger: LedgerConfig{
			Type:      "csv",
			UsersFile: "./users.csv",
		},
		Journal: JournalConfig{
			Type: "csv",
			Dir:  "./transactions",
		},
	}
}
