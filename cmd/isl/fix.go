package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"isl/internal/diag"
	"isl/internal/driver"
	"isl/internal/fix"
	"isl/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.isl|directory>",
	Short: "Apply available fixes to a document or directory",
	Long:  "Run diagnostics, surface available fixes, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without touching files")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if applyAll {
		mode = fix.ApplyModeAll
	}
	applyOpts := fix.ApplyOptions{Mode: mode}

	opts, err := driverOpts(cmd)
	if err != nil {
		return err
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var fs *source.FileSet
	var diagnostics []diag.Diagnostic

	if !info.IsDir() {
		result := driver.ParseFile(targetPath, opts)
		result.Bag.Sort()
		fs = result.FileSet
		diagnostics = result.Bag.Items()
	} else {
		dirFS, results, dirErr := driver.ParseDir(cmd.Context(), targetPath, 0, opts)
		if dirErr != nil {
			return fmt.Errorf("fix: %w", dirErr)
		}
		fs = dirFS
		for _, r := range results {
			if r.Bag == nil {
				continue
			}
			r.Bag.Sort()
			diagnostics = append(diagnostics, r.Bag.Items()...)
		}
	}

	res, applyErr := fix.Apply(fs, diagnostics, applyOpts)
	if res != nil && !dryRun {
		if writeErr := writeOutputs(fs, res); writeErr != nil {
			return writeErr
		}
	}
	return handleApplyResult(res, applyErr, dryRun)
}

func writeOutputs(fs *source.FileSet, res *fix.Result) error {
	for id, content := range res.Outputs {
		path := fs.Get(id).Path
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return fmt.Errorf("fix: failed to rewrite %s: %w", path, err)
		}
	}
	return nil
}

func handleApplyResult(res *fix.Result, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(os.Stdout, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(os.Stdout, "  %s [%s] (%d edits)\n", item.Title, item.Code.ID(), item.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			title := skip.Title
			if title == "" {
				title = "(unnamed)"
			}
			fmt.Fprintf(os.Stdout, "  %s: %s\n", title, skip.Reason)
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}
