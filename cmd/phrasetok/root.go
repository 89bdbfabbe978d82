package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/example/go-phrasetok/internal/config"
	"github.com/example/go-phrasetok/internal/phrase"
	"github.com/example/go-phrasetok/internal/server"
	"github.com/example/go-phrasetok/internal/subword"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
	cfgLoaded bool
)

func NewRootCmd() *cobra.Command {
	cfgLoaded = false
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "phrasetok",
		Short: "Phrase tokenizer command line",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			cfgLoaded = true
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newDetokenizeCmd())
	cmd.AddCommand(newVocabCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHealthCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := server.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if !cfgLoaded {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// buildTokenizer loads the vocabulary payload and constructs the tokenizer,
// applying the CLI/config overrides on top of the payload values.
func buildTokenizer(cfg config.Config) (*phrase.Tokenizer, error) {
	payload, err := phrase.LoadConfig(cfg.Paths.VocabPath)
	if err != nil {
		return nil, err
	}

	if cfg.Tokenizer.Prob >= 0 {
		p := cfg.Tokenizer.Prob
		payload.Prob = &p
	}

	policy, err := config.NormalizeOOVPolicy(cfg.Tokenizer.OOVPolicy)
	if err != nil {
		return nil, err
	}
	if policy != "" {
		payload.OOVPolicy = policy
	}

	var opts []phrase.Option
	if cfg.Tokenizer.Seed != 0 {
		opts = append(opts, phrase.WithRandSource(rand.New(rand.NewSource(cfg.Tokenizer.Seed))))
	}
	if cfg.Paths.SubwordModelPath != "" {
		enc, err := subword.NewSentencePieceEncoder(cfg.Paths.SubwordModelPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, phrase.WithSubwordEncoder(enc))
	}

	return phrase.New(payload, opts...)
}
