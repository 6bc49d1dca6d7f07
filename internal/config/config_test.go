package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("AUTH_SECRET", "testsecret123456789012345678901234")
	defer os.Unsetenv("AUTH_SECRET")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("unexpected access TTL: %v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("unexpected refresh TTL: %v", cfg.Auth.RefreshTokenTTL)
	}
	if cfg.Cookies.AccessName != "access_token" || cfg.Cookies.RefreshName != "refresh_token" {
		t.Fatalf("unexpected cookie names: %+v", cfg.Cookies)
	}
	if len(cfg.Routes.Protected) == 0 || len(cfg.Routes.AuthOnly) == 0 {
		t.Fatalf("route table should have defaults: %+v", cfg.Routes)
	}
	if cfg.Production() {
		t.Fatalf("default environment should not be production")
	}
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	os.Unsetenv("AUTH_SECRET")

	if _, err := LoadConfig(); err != ErrSecretRequired {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" /chat, /dashboard ,,/settings ")
	want := []string{"/chat", "/dashboard", "/settings"}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected entry %d: got=%q want=%q", i, got[i], want[i])
		}
	}
}
