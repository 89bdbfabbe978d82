package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var idsOnly bool

	cmd := &cobra.Command{
		Use:   "tokenize [text]",
		Short: "Segment text into vocabulary phrases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := buildTokenizer(cfg)
			if err != nil {
				return err
			}

			text, err := readInputText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tokens, ids := tok.Tokenize(text)

			if idsOnly {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), joinIDs(ids))
				return err
			}

			out := struct {
				Tokens []string `json:"tokens"`
				IDs    []int    `json:"ids"`
			}{Tokens: tokens, IDs: ids}

			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&idsOnly, "ids-only", false, "Print only the id sequence, space-separated")

	return cmd
}

// readInputText returns the positional argument when present, otherwise the
// full contents of stdin.
func readInputText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}
