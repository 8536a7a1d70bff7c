package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "reserva-test"
database:
  path: "test.db"
booking:
  daily_rate: 250
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "reserva-test" {
		t.Errorf("expected app name reserva-test, got %s", cfg.App.Name)
	}
	if cfg.Booking.DailyRate != 250 {
		t.Errorf("expected daily rate 250, got %v", cfg.Booking.DailyRate)
	}
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("RESERVA_DB_PATH", "/tmp/env.db")

	yamlContent := "database:\n  path: \"${RESERVA_DB_PATH}\"\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("expected expanded path, got %s", cfg.Database.Path)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Path: "x.db"}}
	cfg.applyDefaults()

	if cfg.Booking.DailyRate != 300 {
		t.Errorf("expected default daily rate 300, got %v", cfg.Booking.DailyRate)
	}
	if cfg.Booking.MaxCompanions != 5 {
		t.Errorf("expected default max companions 5, got %d", cfg.Booking.MaxCompanions)
	}
	if cfg.Exports.Path != "exports" {
		t.Errorf("expected default exports path, got %s", cfg.Exports.Path)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Database: DatabaseConfig{Path: "path"}},
			wantErr: false,
		},
		{
			name:    "missing database path",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "negative daily rate",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Booking:  BookingConfig{DailyRate: -1},
			},
			wantErr: true,
		},
		{
			name: "redis enabled without address",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Redis:    RedisConfig{Enabled: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
