package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

// --- DefaultConfig ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.VocabPath != "models/vocab.json" {
		t.Errorf("VocabPath = %q; want %q", cfg.Paths.VocabPath, "models/vocab.json")
	}

	if cfg.Paths.SubwordModelPath != "" {
		t.Errorf("SubwordModelPath = %q; want empty", cfg.Paths.SubwordModelPath)
	}

	if cfg.Tokenizer.Prob != -1 {
		t.Errorf("Tokenizer.Prob = %v; want -1 (use payload value)", cfg.Tokenizer.Prob)
	}

	if cfg.Tokenizer.Seed != 0 {
		t.Errorf("Tokenizer.Seed = %d; want 0", cfg.Tokenizer.Seed)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":8080")
	}

	if cfg.Server.Workers != 2 {
		t.Errorf("Server.Workers = %d; want 2", cfg.Server.Workers)
	}

	if cfg.Server.MaxTextBytes != 65536 {
		t.Errorf("Server.MaxTextBytes = %d; want 65536", cfg.Server.MaxTextBytes)
	}

	if cfg.Server.RequestTimeout != 10 {
		t.Errorf("Server.RequestTimeout = %d; want 10", cfg.Server.RequestTimeout)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "info")
	}
}

// --- NormalizeOOVPolicy ---

func TestNormalizeOOVPolicy(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "", want: ""},
		{raw: "unk", want: "unk"},
		{raw: "UNK", want: "unk"},
		{raw: "unknown", want: "unk"},
		{raw: " subword ", want: "subword"},
		{raw: "drop", wantErr: true},
	}

	for _, tc := range tests {
		got, err := NormalizeOOVPolicy(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeOOVPolicy(%q) succeeded, want error", tc.raw)
			}
			continue
		}

		if err != nil {
			t.Errorf("NormalizeOOVPolicy(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeOOVPolicy(%q) = %q; want %q", tc.raw, got, tc.want)
		}
	}
}

// --- Load ---

func TestLoad_DefaultsOnly(t *testing.T) {
	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(defaults), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg != defaults {
		t.Errorf("Load with defaults = %+v; want %+v", cfg, defaults)
	}
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phrasetok.yaml")

	contents := []byte("paths:\n  vocab_path: /data/phrases.json\ntokenizer:\n  prob: 0.7\nserver:\n  listen_addr: \":9000\"\nlog_level: debug\n")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{
		Cmd:        newFlagBinder(defaults),
		ConfigFile: path,
		Defaults:   defaults,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Paths.VocabPath != "/data/phrases.json" {
		t.Errorf("VocabPath = %q; want %q", cfg.Paths.VocabPath, "/data/phrases.json")
	}
	if cfg.Tokenizer.Prob != 0.7 {
		t.Errorf("Tokenizer.Prob = %v; want 0.7", cfg.Tokenizer.Prob)
	}
	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":9000")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "debug")
	}
	// Untouched keys keep their defaults.
	if cfg.Server.Workers != defaults.Server.Workers {
		t.Errorf("Server.Workers = %d; want default %d", cfg.Server.Workers, defaults.Server.Workers)
	}
}

func TestLoad_FlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phrasetok.yaml")

	contents := []byte("server:\n  listen_addr: \":9000\"\n  workers: 4\n")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)
	if err := binder.fs.Parse([]string{"--server-workers=8"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(LoadOptions{
		Cmd:        binder,
		ConfigFile: path,
		Defaults:   defaults,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Workers != 8 {
		t.Errorf("Server.Workers = %d; want flag value 8", cfg.Server.Workers)
	}
	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("Server.ListenAddr = %q; want file value %q", cfg.Server.ListenAddr, ":9000")
	}
}

func TestLoad_MissingConfigFileErrors(t *testing.T) {
	defaults := DefaultConfig()

	_, err := Load(LoadOptions{
		Cmd:        newFlagBinder(defaults),
		ConfigFile: filepath.Join(t.TempDir(), "absent.yaml"),
		Defaults:   defaults,
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PHRASETOK_PATHS_VOCAB_PATH", "/env/vocab.json")
	t.Setenv("PHRASETOK_TOKENIZER_SEED", "1234")

	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(defaults), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Paths.VocabPath != "/env/vocab.json" {
		t.Errorf("VocabPath = %q; want env override", cfg.Paths.VocabPath)
	}
	if cfg.Tokenizer.Seed != 1234 {
		t.Errorf("Tokenizer.Seed = %d; want 1234", cfg.Tokenizer.Seed)
	}
}

func TestLoad_FlagOverridesDefaults(t *testing.T) {
	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)

	if err := binder.fs.Parse([]string{"--tokenizer-prob=0.25", "--server-workers=8"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tokenizer.Prob != 0.25 {
		t.Errorf("Tokenizer.Prob = %v; want 0.25", cfg.Tokenizer.Prob)
	}
	if cfg.Server.Workers != 8 {
		t.Errorf("Server.Workers = %d; want 8", cfg.Server.Workers)
	}
}
