package secrets_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Strob0t/gchat-notify/internal/secrets"
)

func TestNewVault_InitialLoad(t *testing.T) {
	v, err := secrets.NewVault(func() (string, error) {
		return "https://chat.example/a", nil
	})
	if err != nil {
		t.Fatalf("NewVault failed: %v", err)
	}

	if got := v.WebhookURL(); got != "https://chat.example/a" {
		t.Fatalf("expected webhook url, got %q", got)
	}
}

func TestNewVault_LoaderError(t *testing.T) {
	_, err := secrets.NewVault(func() (string, error) {
		return "", errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("expected error from failing loader")
	}
}

func TestVault_Unconfigured(t *testing.T) {
	v, err := secrets.NewVault(func() (string, error) { return "", nil })
	if err != nil {
		t.Fatalf("NewVault failed: %v", err)
	}
	if got := v.WebhookURL(); got != "" {
		t.Fatalf("expected empty webhook url, got %q", got)
	}
}

func TestVault_Reload(t *testing.T) {
	callCount := 0
	v, _ := secrets.NewVault(func() (string, error) {
		callCount++
		if callCount == 1 {
			return "old", nil
		}
		if callCount == 2 {
			return "new", nil
		}
		return "", errors.New("source down")
	})

	if err := v.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := v.WebhookURL(); got != "new" {
		t.Fatalf("expected 'new' after reload, got %q", got)
	}

	if err := v.Reload(); err == nil || !strings.Contains(err.Error(), "source down") {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
	if got := v.WebhookURL(); got != "new" {
		t.Fatalf("failed reload must keep old values, got %q", got)
	}
}

func TestVault_ConcurrentAccess(t *testing.T) {
	v, _ := secrets.NewVault(func() (string, error) {
		return "url", nil
	})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = v.WebhookURL()
		}()
		go func() {
			defer wg.Done()
			_ = v.Reload()
		}()
	}
	wg.Wait()
}

func TestFingerprint(t *testing.T) {
	url := "https://chat.googleapis.com/v1/spaces/x/messages?key=secret&token=t"
	fp := secrets.Fingerprint(url)
	if len(fp) != 12 {
		t.Fatalf("expected 12 hex chars, got %q", fp)
	}
	if fp != secrets.Fingerprint(url) {
		t.Fatal("fingerprint must be stable")
	}
	if fp == secrets.Fingerprint(url+"x") {
		t.Fatal("different URLs should have different fingerprints")
	}
	if strings.Contains(url, fp) {
		t.Fatal("fingerprint must not leak URL text")
	}
	if secrets.Fingerprint("") != "" {
		t.Fatal("empty url should give empty fingerprint")
	}
}
