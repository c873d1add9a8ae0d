package sitegen

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidateRejectsBadBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Site.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected base URL validation error")
	}

	cfg.Site.BaseURL = "/relative/only"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected relative URL rejected")
	}

	cfg.Site.BaseURL = "https://example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected absolute URL accepted, got %v", err)
	}
}

func TestConfigValidateRejectsEscapingPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.OutputDir = "../outside"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected output dir traversal rejected")
	}

	cfg = DefaultConfig()
	cfg.Site.Subpath = "/blog/../.."
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected subpath traversal rejected")
	}
}

func TestConfigValidateRequiresContentDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Dir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing content dir rejected")
	}
}

func TestConfigValidateRejectsUnknownLoggingProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown logging provider rejected")
	}
}

func TestConfigValidateTimezoneRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.TimezoneOffsetHours = 20
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected out-of-range timezone offset rejected")
	}
}
