package auth

import (
	"strings"

	"golang.org/x/oauth2"
)

// Scopes requested from the health gateway.
var Scopes = []string{
	"metrics:read",
	"workouts:read",
}

// Config holds the OAuth client credentials
type Config struct {
	BaseURL      string // gateway root, e.g. https://gateway.example.com
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8094/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config. The auth
// and token endpoints live under the gateway root.
func NewOAuthConfig(cfg Config) *oauth2.Config {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  base + "/oauth/authorize",
			TokenURL: base + "/oauth/token",
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// AuthResult contains the token and user info from successful auth
type AuthResult struct {
	Token  *oauth2.Token
	UserID string
}

// ExtractUserID extracts the user ID from the token extras.
// The gateway includes the account identifier in the token response.
func ExtractUserID(token *oauth2.Token) string {
	if id, ok := token.Extra("user_id").(string); ok {
		return id
	}
	return ""
}
