package config

import (
	"testing"
)

func TestParse_FlagDefaults(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := parse([]string{"-s", "secret"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.RunAddress != "localhost:8080" {
		t.Errorf("RunAddress default mismatch: %s", cfg.RunAddress)
	}
	if cfg.DatabasePath != "cargomate.db" {
		t.Errorf("DatabasePath default mismatch: %s", cfg.DatabasePath)
	}
	if cfg.JWTSecret != "secret" {
		t.Errorf("JWTSecret mismatch: %s", cfg.JWTSecret)
	}
}

func TestParse_EnvWinsOverFlags(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("DATABASE_PATH", "env.db")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := parse([]string{"-a", ":1111", "-d", "flag.db", "-s", "flag-secret"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.RunAddress != ":9090" || cfg.DatabasePath != "env.db" || cfg.JWTSecret != "env-secret" {
		t.Fatalf("env should win over flags: %+v", cfg)
	}
}

func TestParse_RequiresJWTSecret(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("JWT_SECRET", "")

	if _, err := parse(nil); err == nil {
		t.Fatalf("expected error when JWT secret is not set")
	}
}

func TestString_MasksSecret(t *testing.T) {
	cfg := &Config{RunAddress: ":8080", DatabasePath: "x.db", JWTSecret: "topsecret"}
	s := cfg.String()
	if s == "" {
		t.Fatal("empty string representation")
	}
	for i := 0; i+len("topsecret") <= len(s); i++ {
		if s[i:i+len("topsecret")] == "topsecret" {
			t.Fatalf("secret leaked in String(): %s", s)
		}
	}
}
