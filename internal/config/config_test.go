package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":8090" {
		t.Errorf("expected Server.Addr=:8090, got %s", cfg.Server.Addr)
	}
	if cfg.PredicatesUpper {
		t.Error("expected PredicatesUpper=false by default")
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected RequestTimeout=30s, got %s", cfg.RequestTimeout)
	}
}

func TestLoadFallsBackToDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8090" {
		t.Errorf("expected default Server.Addr, got %s", cfg.Server.Addr)
	}
}

func TestConfigSaveLoadRoundTrips(t *testing.T) {
	t.Setenv("NEXSIM_GRAPH_URI", "")
	t.Setenv("NEXSIM_SERVER_ADDR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.GraphDB.URI = "bolt://graph.internal:7687"
	cfg.PredicatesUpper = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.GraphDB.URI != "bolt://graph.internal:7687" {
		t.Errorf("expected GraphDB.URI to round-trip, got %s", loaded.GraphDB.URI)
	}
	if !loaded.PredicatesUpper {
		t.Error("expected PredicatesUpper to round-trip as true")
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("NEXSIM_GRAPH_URI", "bolt://override:7687")
	t.Setenv("PREDICATES_UPPER", "true")
	t.Setenv("NEXSIM_REQUEST_TIMEOUT", "5s")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.GraphDB.URI != "bolt://override:7687" {
		t.Errorf("expected GraphDB.URI override, got %s", cfg.GraphDB.URI)
	}
	if !cfg.PredicatesUpper {
		t.Error("expected PREDICATES_UPPER=true to override PredicatesUpper")
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected RequestTimeout override, got %s", cfg.RequestTimeout)
	}
}

func TestConfigValidateRejectsEmptyGraphURI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GraphDB.URI = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty graph_db.uri")
	}
}

func TestConfigValidateRejectsNonPositiveTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequestTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for non-positive request_timeout")
	}
}
