package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SUPER_ADMIN_LIST", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MARKER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ConfigFile != "config.json" {
		t.Errorf("ConfigFile = %q, want config.json", cfg.ConfigFile)
	}
	if cfg.Marker != "[Alpha]" {
		t.Errorf("Marker = %q, want [Alpha]", cfg.Marker)
	}
	if len(cfg.SuperAdmins) != 0 {
		t.Errorf("SuperAdmins = %v, want empty", cfg.SuperAdmins)
	}
}

func TestLoadRequiresBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a missing BOT_TOKEN")
	}
}

func TestParseSuperAdmins(t *testing.T) {
	got := parseSuperAdmins(" @alice, bob ,, @charlie")
	want := []string{"alice", "bob", "charlie"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSuperAdmins: got %v, want %v", got, want)
	}
}
