// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultRequestTimeoutMs = 10000

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// CatalogAPIConfig provides settings for the upstream catalog service.
type CatalogAPIConfig interface {
	GetCatalogBaseURL() string
	GetRequestTimeout() time.Duration
	GetCompanyName() string
}

// FormsConfig provides settings for contact form submission.
type FormsConfig interface {
	GetQuotePath() string
	GetCommentPath() string
	GetPhoneDefaultRegion() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// RateLimitConfig provides settings for public form rate limiting.
type RateLimitConfig interface {
	GetFormsRatePerMinute() int
}

// EmailConfig provides settings for submission notification mail.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetEmailNotifyAddress() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	CatalogBaseURL     string
	RequestTimeout     time.Duration
	CompanyName        string
	QuotePath          string
	CommentPath        string
	PhoneDefaultRegion string
	CORSAllowAll       bool
	CORSOrigins        []string
	FormsRatePerMinute int
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	EmailFromName      string
	EmailFromAddress   string
	EmailNotifyAddress string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// CatalogAPIConfig implementation
func (c *Config) GetCatalogBaseURL() string        { return c.CatalogBaseURL }
func (c *Config) GetRequestTimeout() time.Duration { return c.RequestTimeout }
func (c *Config) GetCompanyName() string           { return c.CompanyName }

// FormsConfig implementation
func (c *Config) GetQuotePath() string          { return c.QuotePath }
func (c *Config) GetCommentPath() string        { return c.CommentPath }
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// RateLimitConfig implementation
func (c *Config) GetFormsRatePerMinute() int { return c.FormsRatePerMinute }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailNotifyAddress != ""
}
func (c *Config) GetSMTPHost() string           { return c.SMTPHost }
func (c *Config) GetSMTPPort() int              { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string       { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string       { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string      { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string   { return c.EmailFromAddress }
func (c *Config) GetEmailNotifyAddress() string { return c.EmailNotifyAddress }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	timeoutMs := mustInt(getEnv("CATALOG_API_TIMEOUT_MS", strconv.Itoa(defaultRequestTimeoutMs)))
	if timeoutMs <= 0 {
		timeoutMs = defaultRequestTimeoutMs
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CatalogBaseURL:     strings.TrimRight(getEnv("CATALOG_API_BASE_URL", ""), "/"),
		RequestTimeout:     time.Duration(timeoutMs) * time.Millisecond,
		CompanyName:        strings.TrimSpace(getEnv("COMPANY_NAME", "")),
		QuotePath:          getEnv("FORMS_QUOTE_PATH", "/web/cotizacion"),
		CommentPath:        getEnv("FORMS_COMMENT_PATH", "/web/comentario"),
		PhoneDefaultRegion: strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "EC")),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		FormsRatePerMinute: mustInt(getEnv("FORMS_RATE_PER_MINUTE", "5")),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Storefront"),
		EmailFromAddress:   getEnv("EMAIL_FROM_ADDRESS", ""),
		EmailNotifyAddress: getEnv("EMAIL_NOTIFY_ADDRESS", ""),
	}

	if cfg.CatalogBaseURL == "" {
		return nil, fmt.Errorf("CATALOG_API_BASE_URL is required")
	}
	if cfg.CompanyName == "" {
		return nil, fmt.Errorf("COMPANY_NAME is required")
	}
	if cfg.GetEmailEnabled() && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when SMTP_HOST is set")
	}
	if !cfg.CORSAllowAll && len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS must list an origin unless CORS_ALLOW_ALL is true")
	}
	if cfg.FormsRatePerMinute <= 0 {
		cfg.FormsRatePerMinute = 5
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
