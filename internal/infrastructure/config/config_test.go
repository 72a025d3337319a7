package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port, got %s", cfg.Port)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day token ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.EmailDomain != "@student.its.ac.id" {
		t.Errorf("unexpected email domain %s", cfg.Auth.EmailDomain)
	}
	if cfg.Mongo.Database != "bagibarang_its" {
		t.Errorf("unexpected database %s", cfg.Mongo.Database)
	}
	if cfg.Upload.MaxBytes != 5<<20 {
		t.Errorf("unexpected upload limit %d", cfg.Upload.MaxBytes)
	}
	if cfg.IsProduction() {
		t.Errorf("default env must not be production")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"JWT_SECRET": ""})); err == nil {
		t.Fatal("expected error with empty JWT_SECRET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"TOKEN_TTL":    "1h",
		"EMAIL_DOMAIN": "@its.ac.id",
		"ENV":          "production",
		"REDIS_DB":     "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.TokenTTL != time.Hour || cfg.Auth.EmailDomain != "@its.ac.id" || cfg.Redis.DB != 2 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production")
	}
}
