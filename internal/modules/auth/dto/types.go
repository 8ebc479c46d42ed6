package dto

import "time"

type TokenOutput struct {
	Value string
	Store string
	Key   string
}

type StatusOutput struct {
	Authenticated bool
	HasToken      bool
	Store         string
	Key           string
	Subject       string
	Email         string
	ExpiresAt     time.Time
	DecodeError   string
	Bypass        bool
}

type SaveTokenInput struct {
	Token string
	// Store defaults to "local".
	Store string
}

type RemoteConfigOutput struct {
	AuthMethod        string
	TokenLocations    []string
	TokenFormat       string
	LoginURL          string
	LogoutURL         string
	JWTConfigured     bool
	IntegrationStatus string
}
