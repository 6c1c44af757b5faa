package config

import (
	"os"
	"path/filepath"
	"testing"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		// t.Setenv registers the restore; Unsetenv then removes it for the test.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, envAddr, envLog, envDebug)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != DefaultAddr || cfg.LogPath != "" || cfg.Debug {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv(envAddr, "127.0.0.1:9000")
	t.Setenv(envLog, "/tmp/kvcache.log")
	t.Setenv(envDebug, "true")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.LogPath != "/tmp/kvcache.log" || !cfg.Debug {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	unsetEnv(t, envAddr, envLog, envDebug)
	t.Setenv(envAddr, ":1234")

	path := filepath.Join(t.TempDir(), ".env")
	data := "KVCACHE_ADDR=:5555\nKVCACHE_DEBUG=1\nKVCACHE_LOG=-\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv sets variables process-wide; make sure they are cleaned up.
	t.Cleanup(func() {
		os.Unsetenv(envDebug)
		os.Unsetenv(envLog)
	})

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":1234" {
		t.Fatalf("environment must win over .env, Addr = %q", cfg.Addr)
	}
	if !cfg.Debug || cfg.LogPath != "-" {
		t.Fatalf(".env values not applied: %+v", cfg)
	}
}

func TestLoadBadDebug(t *testing.T) {
	t.Setenv(envDebug, "sometimes")
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected an error for a non-boolean KVCACHE_DEBUG")
	}
}
