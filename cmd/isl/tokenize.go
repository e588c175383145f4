package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"isl/internal/diagfmt"
	"isl/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.isl",
	Short: "Tokenize an ISL document",
	Long:  `Tokenize breaks down an ISL document into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	opts, err := driverOpts(cmd)
	if err != nil {
		return err
	}

	// Выполняем токенизацию
	result := driver.TokenizeFile(filePath, opts)

	// Выводим диагностику в stderr, если есть
	if result.Bag != nil && result.Bag.Len() > 0 {
		pOpts, optErr := prettyOpts(cmd)
		if optErr != nil {
			return optErr
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, pOpts)
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
