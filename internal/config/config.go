package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vitalcoach/internal/nutrition"
)

// Config represents the application configuration
type Config struct {
	Gateway GatewayConfig `json:"gateway"`
	Recipes RecipesConfig `json:"recipes"`
	Profile ProfileConfig `json:"profile"`
	Plan    PlanConfig    `json:"plan"`
}

// GatewayConfig holds health gateway API credentials
type GatewayConfig struct {
	BaseURL      string `json:"base_url"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// RecipesConfig holds recipe API credentials
type RecipesConfig struct {
	APIKey string `json:"api_key"`
}

// ProfileConfig holds the user's biometric profile. It backs the
// BMR estimate when the gateway has no basal energy data.
type ProfileConfig struct {
	Sex       string  `json:"sex"` // "male" or "female"
	BirthYear int     `json:"birth_year"`
	HeightCm  float64 `json:"height_cm"`
}

// PlanConfig holds the user's training plan settings
type PlanConfig struct {
	Goal          string `json:"goal"`
	ActivityLevel string `json:"activity_level"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Gateway: GatewayConfig{
			BaseURL: "https://gateway.vitalcoach.dev/api/v1",
		},
		Plan: PlanConfig{
			Goal:          string(nutrition.GoalMaintenance),
			ActivityLevel: string(nutrition.ActivityModerate),
		},
	}
}

// Load reads the configuration from ~/.vitalcoach/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = defaults.Gateway.BaseURL
	}
	if cfg.Plan.Goal == "" {
		cfg.Plan.Goal = defaults.Plan.Goal
	}
	if cfg.Plan.ActivityLevel == "" {
		cfg.Plan.ActivityLevel = defaults.Plan.ActivityLevel
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.vitalcoach/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Gateway.ClientID = "YOUR_CLIENT_ID"
	example.Gateway.ClientSecret = "YOUR_CLIENT_SECRET"
	example.Recipes.APIKey = "YOUR_RECIPE_API_KEY"

	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Gateway.ClientID == "" || c.Gateway.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("gateway.client_id is required - register the app with your health gateway")
	}
	if c.Gateway.ClientSecret == "" || c.Gateway.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("gateway.client_secret is required - register the app with your health gateway")
	}

	if !nutrition.ValidGoal(nutrition.Goal(c.Plan.Goal)) {
		return fmt.Errorf("plan.goal %q is not recognized", c.Plan.Goal)
	}
	if !nutrition.ValidActivityLevel(nutrition.ActivityLevel(c.Plan.ActivityLevel)) {
		return fmt.Errorf("plan.activity_level %q is not recognized", c.Plan.ActivityLevel)
	}

	if c.Profile.Sex != "" && c.Profile.Sex != "male" && c.Profile.Sex != "female" {
		return fmt.Errorf("profile.sex must be \"male\" or \"female\", got %q", c.Profile.Sex)
	}
	if c.Profile.BirthYear != 0 && (c.Profile.BirthYear < 1900 || c.Profile.BirthYear > 2100) {
		return fmt.Errorf("profile.birth_year %d is out of range", c.Profile.BirthYear)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".vitalcoach", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".vitalcoach"), nil
}
