package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the phrase vocabulary",
	}

	cmd.AddCommand(newVocabSizeCmd())
	cmd.AddCommand(newVocabLookupCmd())

	return cmd
}

func newVocabSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Print the number of vocabulary entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := buildTokenizer(cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok.Vocab().Size())
			return err
		},
	}
}

func newVocabLookupCmd() *cobra.Command {
	var byID bool

	cmd := &cobra.Command{
		Use:   "lookup <phrase|id>",
		Short: "Look up a phrase or, with --id, a numeric id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := buildTokenizer(cfg)
			if err != nil {
				return err
			}
			v := tok.Vocab()

			if byID {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid id %q: %w", args[0], err)
				}

				p, ok := v.LookupPhrase(id)
				if !ok {
					return fmt.Errorf("id %d out of range [0, %d)", id, v.Size())
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
				return err
			}

			id, ok := v.LookupID(args[0])
			if !ok {
				return fmt.Errorf("phrase %q not in vocabulary", args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}

	cmd.Flags().BoolVar(&byID, "id", false, "Treat the argument as a numeric id")

	return cmd
}
