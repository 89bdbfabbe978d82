package phrase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// ParseConfig / LoadConfig
// ---------------------------------------------------------------------------

func TestParseConfig_FullPayload(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"phrases": ["the", "Show me"],
		"separators": " ",
		"prob": 0.8,
		"unknown_id": 7,
		"oov_policy": "unk"
	}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if len(cfg.Phrases) != 2 || cfg.Phrases[1] != "Show me" {
		t.Errorf("phrases = %v", cfg.Phrases)
	}
	if cfg.prob() != 0.8 {
		t.Errorf("prob = %v, want 0.8", cfg.prob())
	}
	if cfg.unknownID() != 7 {
		t.Errorf("unknownID = %d, want 7", cfg.unknownID())
	}
}

func TestParseConfig_DefaultsWhenAbsent(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"phrases": ["a"]}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.prob() != 1.0 {
		t.Errorf("default prob = %v, want 1.0", cfg.prob())
	}
	if cfg.unknownID() != -1 {
		t.Errorf("default unknownID = %d, want -1", cfg.unknownID())
	}
	if cfg.policy() != OOVUnknown {
		t.Errorf("default policy = %q, want %q", cfg.policy(), OOVUnknown)
	}
}

func TestParseConfig_MalformedJSON(t *testing.T) {
	_, err := ParseConfig([]byte(`{"phrases": [`))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/vocab.json")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

// ---------------------------------------------------------------------------
// New — construction failures
// ---------------------------------------------------------------------------

func TestNew_EmptyPhraseList(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNew_ProbOutOfRange(t *testing.T) {
	for _, p := range []float64{-0.1, 1.1} {
		p := p
		_, err := New(Config{Phrases: []string{"a"}, Prob: &p})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("prob %v: err = %v, want ErrInvalidConfig", p, err)
		}
	}
}

func TestNew_UnknownOOVPolicy(t *testing.T) {
	_, err := New(Config{Phrases: []string{"a"}, OOVPolicy: "drop"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

// ---------------------------------------------------------------------------
// NewFromFile
// ---------------------------------------------------------------------------

func TestNewFromFile_EndToEnd(t *testing.T) {
	path := writeConfig(t, `{"phrases": ["the", "way.", "way", "Show me", "Show"]}`)

	tok, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}

	tokens, _ := tok.Tokenize("Show me the way.")
	want := []string{"Show me", "the", "way."}
	if !equalStrings(tokens, want) {
		t.Errorf("tokens = %v, want %v", tokens, want)
	}
}

func TestNewFromFile_InvalidPayload(t *testing.T) {
	path := writeConfig(t, `{"phrases": []}`)

	if _, err := NewFromFile(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
