package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/oauth2"

	tea "github.com/charmbracelet/bubbletea"

	"vitalcoach/internal/auth"
	"vitalcoach/internal/config"
	"vitalcoach/internal/healthapi"
	"vitalcoach/internal/recipes"
	"vitalcoach/internal/service"
	"vitalcoach/internal/store"
	"vitalcoach/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("You need to add your health gateway API credentials.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	// Check for existing auth
	storedAuth, err := st.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		fmt.Println("No authentication found. Starting OAuth flow...")
		if err := authenticate(ctx, st, cfg); err != nil {
			return fmt.Errorf("authentication: %w", err)
		}
		storedAuth, err = st.GetAuth()
		if err != nil {
			return fmt.Errorf("fetching auth after login: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("checking auth: %w", err)
	}

	// Create token source for API calls (with auto-refresh)
	oauthCfg := newOAuthConfig(cfg)

	token := &oauth2.Token{
		AccessToken:  storedAuth.AccessToken,
		RefreshToken: storedAuth.RefreshToken,
		Expiry:       storedAuth.ExpiresAt,
	}

	tokenSource := auth.NewTokenSource(oauthCfg, token, func(newToken *oauth2.Token) error {
		return st.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
	})

	// Test token is valid by getting a fresh one
	if _, err := tokenSource.Token(); err != nil {
		fmt.Println("Stored token is invalid or expired. Re-authenticating...")
		if err := authenticate(ctx, st, cfg); err != nil {
			return fmt.Errorf("re-authentication: %w", err)
		}
		storedAuth, err = st.GetAuth()
		if err != nil {
			return fmt.Errorf("fetching auth after re-login: %w", err)
		}
	}

	// Create services
	gateway := healthapi.NewClient(cfg.Gateway.BaseURL, tokenSource)

	var recipeClient service.RecipeSearcher
	if cfg.Recipes.APIKey != "" && cfg.Recipes.APIKey != "YOUR_RECIPE_API_KEY" {
		recipeClient = recipes.NewClient(cfg.Recipes.APIKey)
	}

	syncSvc := service.NewSyncService(gateway, st, storedAuth.UserID)
	planSvc := service.NewPlanService(gateway, st, recipeClient, cfg.Profile, cfg.Plan, storedAuth.UserID)

	// Launch TUI
	app := tui.NewApp(st, planSvc, syncSvc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func newOAuthConfig(cfg *config.Config) *oauth2.Config {
	return auth.NewOAuthConfig(auth.Config{
		BaseURL:      cfg.Gateway.BaseURL,
		ClientID:     cfg.Gateway.ClientID,
		ClientSecret: cfg.Gateway.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})
}

func authenticate(ctx context.Context, st *store.Store, cfg *config.Config) error {
	result, err := auth.Authenticate(ctx, newOAuthConfig(cfg))
	if err != nil {
		return err
	}

	userID := result.UserID
	if userID == "" {
		return errors.New("gateway did not return a user id")
	}

	storedAuth := &store.Auth{
		UserID:       userID,
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		ExpiresAt:    result.Token.Expiry,
	}

	if err := st.SaveAuth(storedAuth); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}

	fmt.Println()
	fmt.Printf("Successfully connected account %s!\n", userID)
	return nil
}
