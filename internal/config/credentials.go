package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoCredentials means a provider needs an API key and none was found
var ErrNoCredentials = errors.New("no API key configured")

// Credentials is what a provider needs to authenticate
type Credentials struct {
	Provider string
	APIKey   string
	// Source is "env", "config" or "" when the provider needs no key
	Source string
}

// ResolveCredentials looks up the API key for a provider. The provider's
// environment variable wins over the config file; the config key only applies
// to the configured provider.
func (c *Config) ResolveCredentials(providerID string) (*Credentials, error) {
	info := GetProvider(providerID)
	if info == nil {
		return nil, fmt.Errorf("unknown provider: %s", providerID)
	}

	creds := &Credentials{Provider: info.ID}

	if info.EnvVar != "" {
		if key := os.Getenv(info.EnvVar); key != "" {
			creds.APIKey = key
			creds.Source = "env"
			return creds, nil
		}
	}

	if c.APIKey != "" && c.Provider == info.ID {
		creds.APIKey = c.APIKey
		creds.Source = "config"
		return creds, nil
	}

	if info.NeedsAPIKey {
		return nil, fmt.Errorf("%s: %w (set %s or api_key in config)", info.Name, ErrNoCredentials, info.EnvVar)
	}
	return creds, nil
}
