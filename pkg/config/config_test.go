package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// clearEnv blanks every override so the host environment cannot leak into a case.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ENV", "LOG_LEVEL", "FEATURE_SCHEMA_PATH", "NEIGHBOURHOODS_PATH",
		"GEOCODER_PROVIDER", "GOOGLE_MAPS_API_KEY", "MODEL_URL", "REDIS_ENABLED",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TLS_ENABLED",
		"REDIS_TLS_CERT_FILE", "JWT_SECRET",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
assets:
  schema_path: assets/feature_schema.json
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Geocoder.Provider != "nominatim" {
		t.Errorf("provider = %q, want nominatim", cfg.Geocoder.Provider)
	}
	if cfg.Geocoder.QuerySuffix != DefaultQuerySuffix {
		t.Errorf("suffix = %q", cfg.Geocoder.QuerySuffix)
	}
	if cfg.GeocodeTimeout() != 10*time.Second {
		t.Errorf("geocode timeout = %v, want 10s", cfg.GeocodeTimeout())
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled unless configured")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 9000
assets:
  schema_path: a.json
geocoder:
  provider: nominatim
`)
	t.Setenv("PORT", "9100")
	t.Setenv("GEOCODER_PROVIDER", "google")
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Geocoder.Provider != "google" || cfg.Geocoder.BaseURL != DefaultGoogleURL {
		t.Errorf("geocoder = %+v", cfg.Geocoder)
	}
	if !cfg.Redis.Enabled {
		t.Error("REDIS_ENABLED=true not applied")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "missing schema", body: "server:\n  port: 8080\n"},
		{name: "unknown provider", body: "assets:\n  schema_path: a.json\ngeocoder:\n  provider: bing\n"},
		{name: "google without key", body: "assets:\n  schema_path: a.json\ngeocoder:\n  provider: google\n"},
		{name: "bad redis port", body: "assets:\n  schema_path: a.json\n", env: map[string]string{"REDIS_PORT": "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestShippedConfigLeavesBoundariesUnset(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig("../../configs/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Assets.NeighbourhoodsPath != "" {
		t.Errorf("neighbourhoods_path = %q; the dataset is not shipped", cfg.Assets.NeighbourhoodsPath)
	}
	if cfg.Assets.SchemaPath != "assets/feature_schema.json" {
		t.Errorf("schema_path = %q", cfg.Assets.SchemaPath)
	}
}
