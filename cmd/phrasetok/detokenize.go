package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDetokenizeCmd() *cobra.Command {
	var tokensOnly bool

	cmd := &cobra.Command{
		Use:   "detokenize [id...]",
		Short: "Reconstruct text from a sequence of phrase ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := buildTokenizer(cfg)
			if err != nil {
				return err
			}

			ids, err := readInputIDs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			if tokensOnly {
				tokens, err := tok.DetokenizeToTokens(ids)
				if err != nil {
					return err
				}
				for _, token := range tokens {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), token); err != nil {
						return err
					}
				}
				return nil
			}

			text, err := tok.Detokenize(ids)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&tokensOnly, "tokens-only", false, "Print one phrase per line instead of joined text")

	return cmd
}

// readInputIDs parses ids from the positional arguments, or from stdin when
// no arguments are given. Ids may be separated by whitespace or commas.
func readInputIDs(args []string, stdin io.Reader) ([]int, error) {
	fields := args
	if len(fields) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		fields = strings.Fields(strings.ReplaceAll(string(data), ",", " "))
	}

	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		for _, part := range strings.Split(f, ",") {
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid id %q: %w", part, err)
			}
			ids = append(ids, id)
		}
	}

	return ids, nil
}
