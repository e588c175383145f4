package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"isl/internal/langver"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [flags] file.isl",
	Short: "Migrate a document to a newer language version",
	Long:  `Migrate rewrites an ISL document from its declared language version to a newer one, applying each upgrade rule in order. The source version is taken from the @version directive unless --from is given.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().String("from", "", "source language version (default: the @version directive)")
	migrateCmd.Flags().String("to", string(langver.Latest()), "target language version")
	migrateCmd.Flags().Bool("write", false, "rewrite the file in place instead of printing to stdout")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	fromFlag, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}
	toFlag, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	src := string(content)

	from := langver.Version(fromFlag)
	if fromFlag == "" {
		detected, found := langver.ExtractDirective(src)
		if !found {
			// Documents predating the directive are 1.0 by definition.
			detected = langver.V1_0
		}
		from = detected
	}

	migrated, applied, err := langver.Migrate(src, from, langver.Version(toFlag))
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if !quiet {
		for _, rule := range applied {
			fmt.Fprintf(os.Stderr, "applied: %s\n", rule)
		}
	}

	if write {
		if err := os.WriteFile(filePath, []byte(migrated), 0o600); err != nil {
			return fmt.Errorf("migrate: failed to rewrite %s: %w", filePath, err)
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "migrated %s to %s\n", filePath, toFlag)
		}
		return nil
	}

	fmt.Fprint(os.Stdout, migrated)
	return nil
}
