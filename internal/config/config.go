package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string `yaml:"listen_addr"`
	Port          string `yaml:"port"`
	GinMode       string `yaml:"gin_mode"`
	SessionSecret string `yaml:"session_secret"`
	DatabasePath  string `yaml:"database_path"`
	APIBaseURL    string `yaml:"api_base_url"`
	TemplateGlob  string `yaml:"template_glob"`
	StaticDir     string `yaml:"static_dir"`
	RedisURL      string `yaml:"redis_url"`

	OIDC    OIDCConfig    `yaml:"oidc"`
	Storage StorageConfig `yaml:"storage"`
}

// OIDCConfig 描述身份提供方。
type OIDCConfig struct {
	IssuerURL    string   `yaml:"issuer_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	Audience     string   `yaml:"audience"`
	Scopes       []string `yaml:"scopes"`
	RolesClaim   string   `yaml:"roles_claim"`
	LogoutURL    string   `yaml:"logout_url"`
}

type StorageConfig struct {
	ConnectionString string `yaml:"connection_string"`
}

const devSessionSecret = "resumedash-dev-secret"

func defaults() AppConfig {
	return AppConfig{
		Port:          "8080",
		GinMode:       "release",
		SessionSecret: devSessionSecret,
		DatabasePath:  "resumedash.db",
		APIBaseURL:    "http://localhost:5170",
		TemplateGlob:  "web/template/*.html",
		StaticDir:     "web/static",
		OIDC: OIDCConfig{
			RolesClaim: "https://auth.empowertech.be/roles",
		},
	}
}

// Load 依次读取默认值、CONFIG_FILE 指定的 YAML 与环境变量，后者优先。
// 当前目录下的 .env 会先被载入环境。
func Load() (AppConfig, error) {
	cfg, err := read()
	if err != nil {
		return AppConfig{}, err
	}
	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// LoadTooling reads the same sources as Load for commands that never
// issue session cookies, so the session secret is not checked.
func LoadTooling() (AppConfig, error) {
	return read()
}

func read() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return AppConfig{}, err
		}
	}

	applyEnv(&cfg)

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.Port, "PORT")
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.SessionSecret, "SESSION_SECRET")
	setString(&cfg.DatabasePath, "DATABASE_PATH")
	setString(&cfg.APIBaseURL, "API_BASE_URL")
	setString(&cfg.TemplateGlob, "TEMPLATE_GLOB")
	setString(&cfg.StaticDir, "STATIC_DIR")
	setString(&cfg.RedisURL, "REDIS_URL")

	setString(&cfg.OIDC.IssuerURL, "OIDC_ISSUER_URL")
	setString(&cfg.OIDC.ClientID, "OIDC_CLIENT_ID")
	setString(&cfg.OIDC.ClientSecret, "OIDC_CLIENT_SECRET")
	setString(&cfg.OIDC.RedirectURL, "OIDC_REDIRECT_URL")
	setString(&cfg.OIDC.Audience, "OIDC_AUDIENCE")
	setString(&cfg.OIDC.RolesClaim, "OIDC_ROLES_CLAIM")
	setString(&cfg.OIDC.LogoutURL, "OIDC_LOGOUT_URL")
	if scopes := strings.TrimSpace(os.Getenv("OIDC_SCOPES")); scopes != "" {
		cfg.OIDC.Scopes = strings.Fields(strings.ReplaceAll(scopes, ",", " "))
	}

	setString(&cfg.Storage.ConnectionString, "AZURE_STORAGE_CONNECTION_STRING")
}

func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func (c AppConfig) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}
	if c.GinMode == "release" && c.SessionSecret == devSessionSecret {
		return errors.New("SESSION_SECRET must be set in release mode")
	}
	return nil
}

// UsesDevSecret reports whether the built-in development session secret is active.
func (c AppConfig) UsesDevSecret() bool {
	return c.SessionSecret == devSessionSecret
}
