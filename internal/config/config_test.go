package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDirHonoursOverride(t *testing.T) {
	home := isolate(t)
	if got := Dir(); got != home {
		t.Errorf("Dir() = %q, want %q", got, home)
	}
	if !strings.HasPrefix(FilePath(), home) {
		t.Errorf("FilePath() = %q, want under %q", FilePath(), home)
	}
}

func TestSetAndGet(t *testing.T) {
	isolate(t)
	viper.Reset()
	t.Cleanup(viper.Reset)

	Load()
	if err := Set(KeyMigrationStyle, MigrationStyleAnonymous); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := Get(KeyMigrationStyle); got != MigrationStyleAnonymous {
		t.Errorf("Get() = %q", got)
	}

	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.Contains(string(data), "migration_style: anonymous") {
		t.Errorf("config file missing key:\n%s", data)
	}

	// The written file feeds LoadSettings.
	s, err := LoadSettings(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.MigrationStyle != MigrationStyleAnonymous {
		t.Errorf("MigrationStyle = %q, want value from user file", s.MigrationStyle)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	isolate(t)
	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := Set("mirror", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := Set(KeyMigrationStyle, "weird"); err == nil {
		t.Error("expected error for invalid migration style")
	}
}
