package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Clear environment variables that might interfere.
	os.Clearenv()

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Check a few default values.
	if config.ServerPort != "8080" {
		t.Errorf("expected ServerPort to be '8080', got %s", config.ServerPort)
	}
	if config.MaxPagesPerSite != 3 {
		t.Errorf("expected MaxPagesPerSite to be 3, got %d", config.MaxPagesPerSite)
	}
	if config.ContactPageLimit != 5 {
		t.Errorf("expected ContactPageLimit to be 5, got %d", config.ContactPageLimit)
	}
	if config.EnrichWorkers != 3 {
		t.Errorf("expected EnrichWorkers to be 3, got %d", config.EnrichWorkers)
	}
	if config.CacheEnabled {
		t.Error("expected CacheEnabled to be false by default")
	}
	if config.ExportBulkURL != "http://localhost:9200/_bulk" {
		t.Errorf("expected ExportBulkURL to be 'http://localhost:9200/_bulk', got %s", config.ExportBulkURL)
	}
	if config.LogLevel != "info" {
		t.Errorf("expected LogLevel to be 'info', got %s", config.LogLevel)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	// Set environment variables.
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("MAX_PAGES_PER_SITE", "7")
	os.Setenv("ENRICH_WORKERS", "5")
	os.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if config.ServerPort != "9090" {
		t.Errorf("expected ServerPort to be '9090', got %s", config.ServerPort)
	}
	if config.MaxPagesPerSite != 7 {
		t.Errorf("expected MaxPagesPerSite to be 7, got %d", config.MaxPagesPerSite)
	}
	if config.EnrichWorkers != 5 {
		t.Errorf("expected EnrichWorkers to be 5, got %d", config.EnrichWorkers)
	}
	if config.LogLevel != "debug" {
		t.Errorf("expected LogLevel to be 'debug', got %s", config.LogLevel)
	}

	// Clean up environment variables after test.
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("MAX_PAGES_PER_SITE")
	os.Unsetenv("ENRICH_WORKERS")
	os.Unsetenv("LOG_LEVEL")
}
