package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.JWT.Algorithm != "HS256" {
		t.Errorf("JWT.Algorithm = %q, want HS256", cfg.JWT.Algorithm)
	}
	if cfg.JWT.AccessTTL != 60*time.Minute {
		t.Errorf("JWT.AccessTTL = %v, want 60m", cfg.JWT.AccessTTL)
	}
	if cfg.Server.APIPrefix != "/api/v1" {
		t.Errorf("Server.APIPrefix = %q", cfg.Server.APIPrefix)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("CORS.AllowedOrigins = %v, want two defaults", cfg.CORS.AllowedOrigins)
	}
	if cfg.Store.Driver != "mysql" {
		t.Errorf("Store.Driver = %q, want mysql", cfg.Store.Driver)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ALG", "HS512")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("CORS_ORIGINS", " https://hope4ever.org, ")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "h4e")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.JWT.Algorithm != "HS512" || cfg.JWT.AccessTTL != 15*time.Minute {
		t.Errorf("JWT = %+v", cfg.JWT)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://hope4ever.org" {
		t.Errorf("CORS.AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if !strings.HasPrefix(cfg.Database.DSN(), "app:@tcp(") || !strings.Contains(cfg.Database.DSN(), "/h4e?") {
		t.Errorf("DSN = %q", cfg.Database.DSN())
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Store.Driver = %q", cfg.Store.Driver)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":  {"JWT_SECRET": ""},
		"asymmetric alg":  {"JWT_ALG": "RS256"},
		"zero ttl":        {"JWT_ACCESS_TTL": "0s"},
		"negative leeway": {"JWT_LEEWAY": "-1s"},
		"unknown driver":  {"STORE_DRIVER": "sqlite"},
		"malformed ttl":   {"JWT_ACCESS_TTL": "soon"},
		"no cors origins": {"CORS_ORIGINS": ""},
		"blank origins":   {"CORS_ORIGINS": " , "},
		"schemeless":      {"CORS_ORIGINS": "example.com"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
