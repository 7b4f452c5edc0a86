package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	NATSURL  string `hcl:"nats_url,optional"`
}

// GameSettings contains the table constants consumed by the engine
type GameSettings struct {
	SmallBlind     int      `hcl:"small_blind,optional"`
	BigBlind       int      `hcl:"big_blind,optional"`
	StartingChips  int      `hcl:"starting_chips,optional"`
	MaxPlayers     int      `hcl:"max_players,optional"`
	AllowedPlayers []string `hcl:"allowed_players,optional"`
}

// defaultAllowedPlayers mirrors the leaderboard's seeded participants
var defaultAllowedPlayers = []string{
	"Geri", "Sepp", "Toni", "Geri Ranner", "Manuel",
	"Rene", "Gabi", "Roland", "Stefan", "Richi",
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8001,
			LogLevel: "info",
		},
		Game: GameSettings{
			SmallBlind:     10,
			BigBlind:       20,
			StartingChips:  1000,
			MaxPlayers:     8,
			AllowedPlayers: defaultAllowedPlayers,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8001
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Game.SmallBlind == 0 {
		cfg.Game.SmallBlind = 10
	}
	if cfg.Game.BigBlind == 0 {
		cfg.Game.BigBlind = 20
	}
	if cfg.Game.StartingChips == 0 {
		cfg.Game.StartingChips = 1000
	}
	if cfg.Game.MaxPlayers == 0 {
		cfg.Game.MaxPlayers = 8
	}
	if len(cfg.Game.AllowedPlayers) == 0 {
		cfg.Game.AllowedPlayers = defaultAllowedPlayers
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Game.BigBlind <= c.Game.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Game.StartingChips < c.Game.BigBlind {
		return fmt.Errorf("starting chips must cover the big blind")
	}
	if c.Game.MaxPlayers < 2 || c.Game.MaxPlayers > 8 {
		return fmt.Errorf("max players must be between 2 and 8")
	}
	if len(c.Game.AllowedPlayers) == 0 {
		return fmt.Errorf("allowed player list must not be empty")
	}
	return nil
}

// Addr returns the full listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
