package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Service.Port != "8080" {
		t.Errorf("got port %q, want 8080", cfg.Service.Port)
	}
	if cfg.Pagination.DefaultLimit != 10 {
		t.Errorf("got default limit %d, want 10", cfg.Pagination.DefaultLimit)
	}
	if cfg.Pagination.MaxLimit != 100 {
		t.Errorf("got max limit %d, want 100", cfg.Pagination.MaxLimit)
	}
	if cfg.ShutdownTimeout != 10 {
		t.Errorf("got shutdown timeout %d, want 10", cfg.ShutdownTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PAGE_LIMIT_DEFAULT", "25")
	t.Setenv("PAGE_LIMIT_MAX", "250")
	t.Setenv("READINESS_DRAIN_DELAY", "8s")

	cfg := Load()
	if cfg.Pagination.DefaultLimit != 25 || cfg.Pagination.MaxLimit != 250 {
		t.Errorf("got pagination %+v, want 25/250", cfg.Pagination)
	}
	if cfg.ReadinessDrainDelay != 8 {
		t.Errorf("got drain delay %d, want 8", cfg.ReadinessDrainDelay)
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Load()
	cfg.Service.Port = "not-a-port"
	cfg.Logging.Level = "loud"
	cfg.Pagination.MaxLimit = 1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	msg := err.Error()
	for _, want := range []string{"PORT", "LOG_LEVEL", "PAGE_LIMIT_MAX"} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation error missing %s: %s", want, msg)
		}
	}
}

func TestValidateOKWithDefaults(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
