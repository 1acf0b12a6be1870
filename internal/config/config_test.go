package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var managedKeys = []string{
	"APP_PORT", "LOG_LEVEL", "GAME_TICK_INTERVAL", "RESULTS_STORE", "SQLITE_PATH",
	"MONGODB_URI", "MONGODB_DB_NAME", "GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "META_VERIFY_TOKEN", "WHATSAPP_BASE_URL",
	"WHATSAPP_API_VERSION", "WHATSAPP_REPORT_RECIPIENT", "REPORT_CRON_SCHEDULE", "TIMEZONE",
	"ANTHROPIC_API_KEY",
}

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" || cfg.Server.LogLevel != "info" {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Game.TickInterval != 1500*time.Millisecond {
		t.Errorf("expected 1.5s tick, got %s", cfg.Game.TickInterval)
	}
	if cfg.Results.Store != StoreSQLite || cfg.Results.SQLitePath != "data/henhouse.db" {
		t.Errorf("unexpected results config %+v", cfg.Results)
	}
	if cfg.WhatsApp.Enabled() || cfg.Sheets.Enabled() {
		t.Errorf("optional integrations should be disabled by default")
	}
	if cfg.Reporting.CronSchedule != "0 20 * * 5" || cfg.Reporting.Timezone != "UTC" {
		t.Errorf("unexpected reporting config %+v", cfg.Reporting)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even to "".
	for _, key := range []string{"APP_PORT", "GAME_TICK_INTERVAL", "RESULTS_STORE"} {
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_PORT=9090\nGAME_TICK_INTERVAL=250ms\nRESULTS_STORE=none\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		for _, key := range []string{"APP_PORT", "GAME_TICK_INTERVAL", "RESULTS_STORE"} {
			os.Unsetenv(key)
		}
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Game.TickInterval != 250*time.Millisecond || cfg.Results.Store != StoreNone {
		t.Errorf("env file values not applied: %+v %+v %+v", cfg.Server, cfg.Game, cfg.Results)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad tick", map[string]string{"GAME_TICK_INTERVAL": "soon"}, "GAME_TICK_INTERVAL"},
		{"negative tick", map[string]string{"GAME_TICK_INTERVAL": "-1s"}, "GAME_TICK_INTERVAL"},
		{"unknown store", map[string]string{"RESULTS_STORE": "redis"}, "RESULTS_STORE"},
		{"mongo without uri", map[string]string{"RESULTS_STORE": "mongodb"}, "MONGODB_URI"},
		{"whatsapp without phone id", map[string]string{"WHATSAPP_TOKEN": "tok", "META_VERIFY_TOKEN": "v"}, "WHATSAPP_PHONE_NUMBER_ID"},
		{"whatsapp without verify token", map[string]string{"WHATSAPP_TOKEN": "tok", "WHATSAPP_PHONE_NUMBER_ID": "1"}, "META_VERIFY_TOKEN"},
		{"sheets store without credentials", map[string]string{"RESULTS_STORE": "sheets"}, "GOOGLE_SHEET_DATABASE_ID"},
		{"half sheets config", map[string]string{"GOOGLE_SHEET_DATABASE_ID": "sheet"}, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load(missingEnvFile(t))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}

func TestWhatsAppEnabledWithFullCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("WHATSAPP_TOKEN", "tok")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "12345")
	t.Setenv("META_VERIFY_TOKEN", "verify")
	t.Setenv("RESULTS_STORE", "MongoDB")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.WhatsApp.Enabled() {
		t.Errorf("expected WhatsApp enabled")
	}
	if cfg.Results.Store != StoreMongoDB {
		t.Errorf("store name should be case-insensitive, got %q", cfg.Results.Store)
	}
}
