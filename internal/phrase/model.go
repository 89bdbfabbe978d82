package phrase

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidConfig is returned at construction when the configuration
// payload is absent, structurally invalid, or the phrase index cannot be
// built from it.
var ErrInvalidConfig = errors.New("invalid phrase tokenizer config")

// Config is the decoded configuration payload: the ordered vocabulary
// phrase list, the separator convention consumed by the boundary
// classifier, and the regularization and out-of-vocabulary settings.
type Config struct {
	// Phrases is the ordered vocabulary; index is id.
	Phrases []string `json:"phrases"`

	// Separators lists the separator codepoints. Empty means "any Unicode
	// whitespace".
	Separators string `json:"separators"`

	// Prob is the match-acceptance probability in [0,1]. Absent means 1.0
	// (pure greedy longest match).
	Prob *float64 `json:"prob,omitempty"`

	// UnknownID is the id emitted for out-of-vocabulary boundary units
	// under the "unk" policy and for unknown subword pieces. Absent means
	// -1, which can never collide with a real vocabulary id.
	UnknownID *int `json:"unknown_id,omitempty"`

	// OOVPolicy is "unk" or "subword". Empty means "unk".
	OOVPolicy string `json:"oov_policy,omitempty"`
}

// ParseConfig decodes a JSON configuration payload.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes a JSON configuration payload from path.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("%w: config path is empty", ErrInvalidConfig)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %q: %v", ErrInvalidConfig, path, err)
	}

	return ParseConfig(data)
}

// NewFromFile loads the payload at path and constructs a Tokenizer from it.
func NewFromFile(path string, opts ...Option) (*Tokenizer, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

func (c Config) prob() float64 {
	if c.Prob == nil {
		return 1.0
	}
	return *c.Prob
}

func (c Config) unknownID() int {
	if c.UnknownID == nil {
		return -1
	}
	return *c.UnknownID
}

func (c Config) policy() string {
	if c.OOVPolicy == "" {
		return OOVUnknown
	}
	return c.OOVPolicy
}

func (c Config) validate() error {
	if len(c.Phrases) == 0 {
		return fmt.Errorf("%w: phrase list is empty", ErrInvalidConfig)
	}

	if p := c.prob(); p < 0 || p > 1 {
		return fmt.Errorf("%w: prob %v outside [0,1]", ErrInvalidConfig, p)
	}

	switch c.policy() {
	case OOVUnknown, OOVSubword:
	default:
		return fmt.Errorf("%w: unknown oov_policy %q (want %s|%s)",
			ErrInvalidConfig, c.OOVPolicy, OOVUnknown, OOVSubword)
	}

	return nil
}
