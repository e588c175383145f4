package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"isl/internal/diagfmt"
	"isl/internal/driver"
	"isl/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format ISL documents canonically",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
}

type fmtResult struct {
	Path      string
	Changed   bool
	Formatted []byte
	Err       error
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	opts, err := driverOpts(cmd)
	if err != nil {
		return err
	}
	pOpts, err := prettyOpts(cmd)
	if err != nil {
		return err
	}

	results := make([]fmtResult, 0, len(args))
	for _, path := range args {
		results = append(results, formatOne(path, check || writeToStdout, opts, pOpts))
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(results, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(results, check, quiet, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(results, check); err != nil {
			return err
		}
		for _, res := range results {
			if res.Err != nil {
				hasErrors = true
			}
			if res.Changed {
				hasChanges = true
			}
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// formatOne parses a single file and renders it canonically. Unless dryRun
// is set, a changed file is rewritten in place.
func formatOne(path string, dryRun bool, opts driver.Options, pOpts diagfmt.PrettyOpts) fmtResult {
	result := driver.ParseFile(path, opts)
	if !result.OK {
		if result.Bag != nil && result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, pOpts)
		}
		return fmtResult{Path: path, Err: fmt.Errorf("document has syntax errors")}
	}

	formatted := []byte(format.Unparse(result.Domain, format.Options{}))
	changed := !bytes.Equal(formatted, result.File.Content)

	if changed && !dryRun {
		if err := os.WriteFile(path, formatted, 0o600); err != nil {
			return fmtResult{Path: path, Err: err}
		}
	}
	return fmtResult{Path: path, Changed: changed, Formatted: formatted}
}

func renderFmtStdout(results []fmtResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(results []fmtResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(results []fmtResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
