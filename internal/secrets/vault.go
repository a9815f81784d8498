// Package secrets holds webhook credentials in memory with hot reload support.
// A Google Chat webhook URL embeds its key and token, so it is treated as a
// secret: held here, never logged, and identified by Fingerprint.
package secrets

import (
	"fmt"
	"sync"
)

// Loader resolves the default webhook URL from its source (config file,
// environment, flags).
type Loader func() (string, error)

// Vault holds the default webhook URL and swaps it atomically on Reload.
type Vault struct {
	mu         sync.RWMutex
	webhookURL string
	loader     Loader
}

// NewVault creates a Vault, calling the loader once for the initial value.
func NewVault(loader Loader) (*Vault, error) {
	url, err := loader()
	if err != nil {
		return nil, fmt.Errorf("initial webhook load: %w", err)
	}
	return &Vault{webhookURL: url, loader: loader}, nil
}

// WebhookURL returns the current default webhook URL, or "" when none is
// configured.
func (v *Vault) WebhookURL() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.webhookURL
}

// Reload calls the loader and replaces the webhook URL.
// If the loader fails the previous URL is kept.
func (v *Vault) Reload() error {
	url, err := v.loader()
	if err != nil {
		return fmt.Errorf("reload webhook: %w", err)
	}
	v.mu.Lock()
	v.webhookURL = url
	v.mu.Unlock()
	return nil
}
