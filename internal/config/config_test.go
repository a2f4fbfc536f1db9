package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LISTEN_ADDR", "GIN_MODE", "SESSION_SECRET", "DATABASE_PATH", "API_BASE_URL",
		"TEMPLATE_GLOB", "STATIC_DIR", "REDIS_URL", "CONFIG_FILE",
		"OIDC_ISSUER_URL", "OIDC_CLIENT_ID", "OIDC_CLIENT_SECRET", "OIDC_REDIRECT_URL",
		"OIDC_AUDIENCE", "OIDC_SCOPES", "OIDC_ROLES_CLAIM", "OIDC_LOGOUT_URL",
		"AZURE_STORAGE_CONNECTION_STRING",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	// .env is resolved relative to the working directory
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.ListenAddr)
	}
	if cfg.APIBaseURL != "http://localhost:5170" {
		t.Fatalf("unexpected api base url %q", cfg.APIBaseURL)
	}
	if cfg.OIDC.RolesClaim != "https://auth.empowertech.be/roles" {
		t.Fatalf("unexpected roles claim %q", cfg.OIDC.RolesClaim)
	}
	if !cfg.UsesDevSecret() {
		t.Fatal("expected development secret")
	}
}

func TestLoadRejectsDevSecretInRelease(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatal("expected error for release mode without SESSION_SECRET")
	}
}

func TestLoadToolingIgnoresSessionSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_STORAGE_CONNECTION_STRING", "AccountName=resumes;AccountKey=a2V5")

	cfg, err := LoadTooling()
	if err != nil {
		t.Fatalf("load tooling config in release mode: %v", err)
	}
	if cfg.GinMode != "release" || !cfg.UsesDevSecret() {
		t.Fatalf("expected release defaults, got mode %q", cfg.GinMode)
	}
	if cfg.Storage.ConnectionString == "" {
		t.Fatal("expected storage connection string from env")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
port: "9000"
api_base_url: https://api.from-file.example/
session_secret: file-secret
oidc:
  issuer_url: https://login.example
  client_id: from-file
  scopes: [openid, email]
storage:
  connection_string: AccountName=a;AccountKey=b
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OIDC_CLIENT_ID", "from-env")
	t.Setenv("OIDC_SCOPES", "openid,profile offline_access")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected port from file, got %q", cfg.ListenAddr)
	}
	if cfg.APIBaseURL != "https://api.from-file.example" {
		t.Fatalf("expected trimmed base url, got %q", cfg.APIBaseURL)
	}
	if cfg.OIDC.IssuerURL != "https://login.example" || cfg.OIDC.ClientID != "from-env" {
		t.Fatalf("unexpected oidc config %+v", cfg.OIDC)
	}
	if len(cfg.OIDC.Scopes) != 3 || cfg.OIDC.Scopes[2] != "offline_access" {
		t.Fatalf("unexpected scopes %v", cfg.OIDC.Scopes)
	}
	if cfg.Storage.ConnectionString == "" {
		t.Fatal("expected storage connection string from file")
	}
}

func TestDotEnvIsLoaded(t *testing.T) {
	clearEnv(t)
	if err := os.WriteFile(".env", []byte("SESSION_SECRET=dotenv-secret\nAPI_BASE_URL=http://api.local:9999\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionSecret != "dotenv-secret" || cfg.APIBaseURL != "http://api.local:9999" {
		t.Fatalf("expected values from .env, got %+v", cfg)
	}
}

func TestInvalidAPIBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("API_BASE_URL", "not a url")
	if _, err := Load(); err == nil {
		t.Fatal("expected invalid url error")
	}
}
