package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override values from config.toml.
const (
	EnvAPIKey       = "YTFOLDER_API_KEY"
	EnvClientID     = "YTFOLDER_CLIENT_ID"
	EnvClientSecret = "YTFOLDER_CLIENT_SECRET"
)

// Search provider names accepted in [search].provider
const (
	ProviderYouTube = "youtube"
	ProviderProxy   = "proxy"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Search      SearchConfig      `toml:"search"`
	Scan        ScanConfig        `toml:"scan"`
	Credentials CredentialsConfig `toml:"credentials"`
	Server      ServerConfig      `toml:"server"`
	Publish     PublishConfig     `toml:"publish"`
}

// SearchConfig controls the video search provider and match thresholds.
type SearchConfig struct {
	Provider          string  `toml:"provider"`
	APIKey            string  `toml:"api_key"`
	ProxyURL          string  `toml:"proxy_url"`
	Limit             int     `toml:"limit"`
	Threshold         int     `toml:"threshold"`
	OfficialSuffix    string  `toml:"official_suffix"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// ScanConfig controls which files the folder scanner picks up.
type ScanConfig struct {
	Extensions []string `toml:"extensions"`
	ReadTags   bool     `toml:"read_tags"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
}

// YouTubeConfig contains OAuth client settings for publishing playlists.
type YouTubeConfig struct {
	ClientSecretPath string `toml:"client_secret_path"`
	TokenPath        string `toml:"token_path"`
}

// ServerConfig contains the OAuth callback server address.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// PublishConfig contains defaults for playlists created on the user's account.
type PublishConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Privacy     string `toml:"privacy"`
}

// RedirectURL is the loopback address registered as the OAuth redirect.
func (s ServerConfig) RedirectURL() string {
	return fmt.Sprintf("http://%s:%d/callback", s.Host, s.Port)
}

// Addr is the listen address of the callback server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate reports values that would make the pipeline misbehave.
func (c *Config) Validate() error {
	switch c.Search.Provider {
	case ProviderYouTube, ProviderProxy:
	default:
		return fmt.Errorf("%w: unknown search provider %q", ErrInvalidConfig, c.Search.Provider)
	}

	if c.Search.Limit <= 0 {
		return fmt.Errorf("%w: search.limit must be positive", ErrInvalidConfig)
	}

	if c.Search.Threshold < 0 || c.Search.Threshold > 100 {
		return fmt.Errorf("%w: search.threshold must be within 0-100", ErrInvalidConfig)
	}

	switch c.Publish.Privacy {
	case "private", "unlisted", "public":
	default:
		return fmt.Errorf("%w: unknown publish.privacy %q", ErrInvalidConfig, c.Publish.Privacy)
	}

	return nil
}

// ApplyEnv overrides credentials with values from the environment, when set.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.Search.APIKey = v
	}
}

// SaveConfig writes config to path as TOML.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
