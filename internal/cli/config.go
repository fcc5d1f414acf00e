package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	PlayerID   string
	PlayerName string
	Token      string
	TokenFile  string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("KABAK_SERVER", "http://localhost:8080"),
		PlayerID:   os.Getenv("KABAK_PLAYER"),
		PlayerName: os.Getenv("KABAK_NAME"),
		Token:      os.Getenv("KABAK_TOKEN"),
		TokenFile:  getEnvOrDefault("KABAK_TOKEN_FILE", defaultTokenFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadToken loads the admin token from file if not already set
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No token file is fine
		}
		return err
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kabak/token"
	}
	return filepath.Join(home, ".kabak", "token")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
