package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Server    ServerConfig    `mapstructure:"server"`
	LogLevel  string          `mapstructure:"log_level"`
}

type PathsConfig struct {
	VocabPath        string `mapstructure:"vocab_path"`
	SubwordModelPath string `mapstructure:"subword_model_path"`
}

type TokenizerConfig struct {
	// Prob overrides the payload's match-acceptance probability when >= 0;
	// -1 means "use the payload value".
	Prob      float64 `mapstructure:"prob"`
	OOVPolicy string  `mapstructure:"oov_policy"`
	// Seed seeds the regularization rand source; 0 means non-deterministic.
	Seed int64 `mapstructure:"seed"`
}

type ServerConfig struct {
	ListenAddr     string `mapstructure:"listen_addr"`
	Workers        int    `mapstructure:"workers"`
	MaxTextBytes   int    `mapstructure:"max_text_bytes"`
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			VocabPath:        "models/vocab.json",
			SubwordModelPath: "",
		},
		Tokenizer: TokenizerConfig{
			Prob:      -1,
			OOVPolicy: "",
			Seed:      0,
		},
		Server: ServerConfig{
			ListenAddr:     ":8080",
			Workers:        2,
			MaxTextBytes:   65536,
			RequestTimeout: 10,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-vocab-path", defaults.Paths.VocabPath, "Path to phrase vocabulary JSON payload")
	fs.String("paths-subword-model-path", defaults.Paths.SubwordModelPath, "Path to fallback SentencePiece model")
	fs.Float64("tokenizer-prob", defaults.Tokenizer.Prob, "Match-acceptance probability override in [0,1]; -1 uses the payload value")
	fs.String("tokenizer-oov-policy", defaults.Tokenizer.OOVPolicy, "Out-of-vocabulary policy override (unk|subword); empty uses the payload value")
	fs.Int64("tokenizer-seed", defaults.Tokenizer.Seed, "Regularization rand seed; 0 is non-deterministic")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-workers", defaults.Server.Workers, "Max concurrent tokenize requests")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("PHRASETOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("phrasetok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.vocab_path", c.Paths.VocabPath)
	v.SetDefault("paths.subword_model_path", c.Paths.SubwordModelPath)
	v.SetDefault("tokenizer.prob", c.Tokenizer.Prob)
	v.SetDefault("tokenizer.oov_policy", c.Tokenizer.OOVPolicy)
	v.SetDefault("tokenizer.seed", c.Tokenizer.Seed)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds each dotted config key to its dashed command-line flag.
// Each key must be bound individually: a blanket BindPFlags of the dashed
// flag names shadows dotted keys read from a config file. Per-key BindPFlag
// keeps the changed-flag > env > config-file > default precedence.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"paths.vocab_path":         "paths-vocab-path",
		"paths.subword_model_path": "paths-subword-model-path",
		"tokenizer.prob":           "tokenizer-prob",
		"tokenizer.oov_policy":     "tokenizer-oov-policy",
		"tokenizer.seed":           "tokenizer-seed",
		"server.listen_addr":       "server-listen-addr",
		"server.workers":           "server-workers",
		"server.max_text_bytes":    "server-max-text-bytes",
		"server.request_timeout":   "server-request-timeout",
		"log_level":                "log-level",
	}

	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}
