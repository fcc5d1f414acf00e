package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/kabak/internal/services/dictionary"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Dictionary maintenance",
	}

	cmd.AddCommand(newDictNormalizeCmd())

	return cmd
}

func newDictNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <src> [dst]",
		Short: "Upper-case, fold Ё to Е and deduplicate a word list",
		Long: `Reads whitespace separated words from src and writes the normalised list,
one word per line, to dst or to stdout when dst is omitted. The first
occurrence of each word keeps its position.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			words, err := dictionary.ReadWords(src)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			normalized := dictionary.NormalizeList(words)

			if len(args) == 1 {
				return dictionary.WriteList(cmd.OutOrStdout(), normalized)
			}

			if err := writeListFile(args[1], normalized); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d words read, %d written to %s\n", len(words), len(normalized), args[1])
			return nil
		},
	}
}

func writeListFile(path string, words []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dictionary.WriteList(f, words); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
