package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "https://api.example.com/")
	t.Setenv("COMPANY_NAME", " ACME ")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetCatalogBaseURL() != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.GetCatalogBaseURL())
	}
	if cfg.GetCompanyName() != "ACME" {
		t.Fatalf("expected trimmed company, got %q", cfg.GetCompanyName())
	}
	if cfg.GetRequestTimeout() != 10*time.Second {
		t.Fatalf("expected 10s default timeout, got %s", cfg.GetRequestTimeout())
	}
	if cfg.GetEmailEnabled() {
		t.Fatalf("expected email disabled without SMTP_HOST")
	}
}

func TestFromEnvTimeoutInMilliseconds(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "https://api.example.com")
	t.Setenv("COMPANY_NAME", "ACME")
	t.Setenv("CATALOG_API_TIMEOUT_MS", "2500")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetRequestTimeout() != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s timeout, got %s", cfg.GetRequestTimeout())
	}
}

func TestFromEnvRequiresBaseURLAndCompany(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "")
	t.Setenv("COMPANY_NAME", "ACME")
	if _, err := fromEnv(); err == nil {
		t.Fatalf("expected error without base URL")
	}

	t.Setenv("CATALOG_API_BASE_URL", "https://api.example.com")
	t.Setenv("COMPANY_NAME", "")
	if _, err := fromEnv(); err == nil {
		t.Fatalf("expected error without company name")
	}
}

func TestFromEnvEmailNeedsFromAddress(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "https://api.example.com")
	t.Setenv("COMPANY_NAME", "ACME")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_NOTIFY_ADDRESS", "ventas@example.com")
	t.Setenv("EMAIL_FROM_ADDRESS", "")

	if _, err := fromEnv(); err == nil {
		t.Fatalf("expected error when email enabled without from address")
	}
}

func TestFromEnvCORS(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "https://api.example.com")
	t.Setenv("COMPANY_NAME", "ACME")

	t.Setenv("CORS_ORIGINS", "https://shop.example.com, *")
	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatalf("expected wildcard origin to allow all")
	}

	t.Setenv("CORS_ORIGINS", " , ")
	t.Setenv("CORS_ALLOW_ALL", "false")
	if _, err := fromEnv(); err == nil {
		t.Fatalf("expected error without any origin")
	}
}
