package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:            ":8080",
		UpstreamBaseURL: "https://hrms.example.com/api/v1",
		UpstreamTimeout: 15 * time.Second,
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsMissingUpstream(t *testing.T) {
	cfg := validConfig()
	cfg.UpstreamBaseURL = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing upstream URL")
	}
}

func TestValidateRejectsNonHTTPUpstream(t *testing.T) {
	cfg := validConfig()
	cfg.UpstreamBaseURL = "ftp://hrms.example.com"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-http upstream URL")
	}
}

func TestValidateRejectsBadPageSizes(t *testing.T) {
	cfg := validConfig()
	cfg.MaxPageSize = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when max page size below default")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.Addr)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Fatalf("unexpected default refresh interval %v", cfg.RefreshInterval)
	}
}
