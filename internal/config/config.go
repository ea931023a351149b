package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag and environment keys. Environment variables use the upper-case,
// underscore form (min-players -> MIN_PLAYERS).
const (
	KeyPort              = "port"
	KeyHost              = "host"
	KeyEnv               = "env"
	KeyMinPlayers        = "min-players"
	KeyMaxPlayers        = "max-players"
	KeyStaleTableTimeout = "stale-table-timeout"
	KeyTableCodeLength   = "table-code-length"
	KeyLogLevel          = "log-level"
	KeyLogFormat         = "log-format"
	KeyCategoriesFile    = "categories-file"
	KeyEnvFile           = "env-file"
	KeyJoinURL           = "join-url"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
	Content ContentConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"

	// JoinURL is where the renderer serves its join page. Invite links and
	// QR codes append the table code to it. Empty means this server's
	// table endpoint.
	JoinURL string
}

// GameConfig holds game-related configuration
type GameConfig struct {
	MinPlayers        int
	MaxPlayers        int
	StaleTableTimeout time.Duration
	TableCodeLength   int
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// ContentConfig points at the category content
type ContentConfig struct {
	CategoriesFile string // empty means the embedded catalog
}

// RegisterFlags adds every configuration flag to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringP(KeyPort, "p", "8080", "port to listen on (env: PORT)")
	fs.StringP(KeyHost, "b", "0.0.0.0", "address to bind to (env: HOST)")
	fs.String(KeyEnv, "development", "development or production (env: ENV)")
	fs.Int(KeyMinPlayers, 3, "players required to start a round (env: MIN_PLAYERS)")
	fs.Int(KeyMaxPlayers, 20, "maximum players at one table (env: MAX_PLAYERS)")
	fs.Duration(KeyStaleTableTimeout, 2*time.Hour, "idle time before a table is removed (env: STALE_TABLE_TIMEOUT)")
	fs.Int(KeyTableCodeLength, 4, "length of generated table codes (env: TABLE_CODE_LENGTH)")
	fs.String(KeyLogLevel, "info", "debug, info, warn or error (env: LOG_LEVEL)")
	fs.String(KeyLogFormat, "text", "text or json (env: LOG_FORMAT)")
	fs.String(KeyCategoriesFile, "", "JSON file with word categories (env: CATEGORIES_FILE)")
	fs.String(KeyJoinURL, "", "renderer join page, the table code is appended (env: JOIN_URL)")
	fs.String(KeyEnvFile, ".env", "dotenv file loaded before reading the environment (env: ENV_FILE)")
}

// NewViper returns a viper instance reading flags from fs and the environment
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// LoadEnvFile loads a dotenv file into the process environment. Variables
// already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load builds the configuration from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetString(KeyPort),
			Host:    v.GetString(KeyHost),
			Env:     v.GetString(KeyEnv),
			JoinURL: strings.TrimRight(v.GetString(KeyJoinURL), "/"),
		},
		Game: GameConfig{
			MinPlayers:        v.GetInt(KeyMinPlayers),
			MaxPlayers:        v.GetInt(KeyMaxPlayers),
			StaleTableTimeout: v.GetDuration(KeyStaleTableTimeout),
			TableCodeLength:   v.GetInt(KeyTableCodeLength),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Content: ContentConfig{
			CategoriesFile: v.GetString(KeyCategoriesFile),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults covers callers that did not register flags
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyHost, "0.0.0.0")
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyMinPlayers, 3)
	v.SetDefault(KeyMaxPlayers, 20)
	v.SetDefault(KeyStaleTableTimeout, 2*time.Hour)
	v.SetDefault(KeyTableCodeLength, 4)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %s", c.Server.Port)
	}
	if c.Game.MinPlayers < 2 {
		return fmt.Errorf("min-players must be at least 2, got %d", c.Game.MinPlayers)
	}
	if c.Game.MaxPlayers < c.Game.MinPlayers {
		return fmt.Errorf("max-players (%d) must not be below min-players (%d)", c.Game.MaxPlayers, c.Game.MinPlayers)
	}
	if c.Game.TableCodeLength < 3 {
		return fmt.Errorf("table-code-length must be at least 3, got %d", c.Game.TableCodeLength)
	}
	if c.Game.StaleTableTimeout <= 0 {
		return errors.New("stale-table-timeout must be positive")
	}
	if c.Server.JoinURL != "" {
		u, err := url.Parse(c.Server.JoinURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("join-url must be an absolute URL, got %q", c.Server.JoinURL)
		}
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("log-format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
