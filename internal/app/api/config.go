package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the environment supplies
// a value.
const (
	DefaultPort             = "8080"
	DefaultShopifyVersion   = "2024-07"
	DefaultMidoceanBaseURL  = "https://api.midocean.com"
	DefaultTokenTTLMinutes  = 2880
	DefaultPendingPageLimit = 100
)

// ShopifyConfig locates the source platform's Admin API.
type ShopifyConfig struct {
	Shop        string `yaml:"shop"`
	APIVersion  string `yaml:"api_version"`
	AccessToken string `yaml:"access_token"`
}

// Configured reports whether the Shopify credentials are present.
func (c ShopifyConfig) Configured() bool {
	return c.Shop != "" && c.AccessToken != ""
}

// MidoceanConfig locates the vendor's order gateway.
type MidoceanConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Configured reports whether the gateway credentials are present.
func (c MidoceanConfig) Configured() bool {
	return c.APIKey != ""
}

// Config carries every setting the API process needs. It is built once at
// startup and passed down explicitly; no component reads the environment
// directly.
type Config struct {
	Port             string         `yaml:"port"`
	Environment      string         `yaml:"environment"`
	ApprovalSecret   string         `yaml:"approval_secret"`
	WebhookSecret    string         `yaml:"webhook_secret"`
	TokenTTL         time.Duration  `yaml:"-"`
	PendingPageLimit int            `yaml:"pending_page_limit"`
	WebhookDevBypass bool           `yaml:"webhook_dev_bypass"`
	Shopify          ShopifyConfig  `yaml:"shopify"`
	Midocean         MidoceanConfig `yaml:"midocean"`
	OTLPEndpoint     string         `yaml:"otlp_endpoint"`
	OTLPInsecure     bool           `yaml:"otlp_insecure"`

	// TokenTTLMinutes is the YAML-facing form of TokenTTL.
	TokenTTLMinutes int `yaml:"token_ttl_minutes"`
}

// LoadConfig builds the configuration: defaults, then the optional YAML file
// named by CONFIG_FILE, then environment variables, later layers overriding
// earlier ones.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:             DefaultPort,
		Environment:      "local",
		TokenTTLMinutes:  DefaultTokenTTLMinutes,
		PendingPageLimit: DefaultPendingPageLimit,
		Shopify:          ShopifyConfig{APIVersion: DefaultShopifyVersion},
		Midocean:         MidoceanConfig{BaseURL: DefaultMidoceanBaseURL},
		OTLPInsecure:     true,
	}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.TokenTTLMinutes <= 0 {
		return Config{}, fmt.Errorf("token TTL must be a positive number of minutes")
	}
	if cfg.PendingPageLimit <= 0 {
		return Config{}, fmt.Errorf("pending page limit must be positive")
	}
	cfg.TokenTTL = time.Duration(cfg.TokenTTLMinutes) * time.Minute
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Environment, "ENVIRONMENT")
	setString(&cfg.ApprovalSecret, "APPROVAL_SECRET")
	setString(&cfg.WebhookSecret, "SHOPIFY_WEBHOOK_SECRET")
	setString(&cfg.Shopify.Shop, "SHOPIFY_SHOP")
	setString(&cfg.Shopify.APIVersion, "SHOPIFY_API_VERSION")
	setString(&cfg.Shopify.AccessToken, "SHOPIFY_ACCESS_TOKEN")
	setString(&cfg.Midocean.BaseURL, "MIDOCEAN_BASE_URL")
	setString(&cfg.Midocean.APIKey, "MIDOCEAN_API_KEY")
	setString(&cfg.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	if raw := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")); raw != "" {
		cfg.OTLPInsecure = isTruthy(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("WEBHOOK_DEV_BYPASS")); raw != "" {
		cfg.WebhookDevBypass = isTruthy(raw)
	}
	if err := setInt(&cfg.TokenTTLMinutes, "APPROVAL_TTL_MINUTES"); err != nil {
		return err
	}
	return setInt(&cfg.PendingPageLimit, "PENDING_PAGE_LIMIT")
}

func setString(target *string, key string) {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		*target = val
	}
}

func setInt(target *int, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer", key)
	}
	*target = value
	return nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
