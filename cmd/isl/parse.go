package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"isl/internal/diagfmt"
	"isl/internal/driver"
	"isl/internal/format"
	"isl/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.isl|directory>",
	Short: "Parse an ISL document or directory and report diagnostics",
	Long:  `Parse analyzes an ISL document or all *.isl files in a directory and reports diagnostics. With --fuzzy, malformed input is recovered block by block instead of rejected.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("fuzzy", false, "recover as much structure as possible from malformed input")
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().Bool("cache", false, "reuse parse outcomes from the on-disk cache (directories only)")
}

func runParse(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch outFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", outFormat)
	}

	fuzzy, err := cmd.Flags().GetBool("fuzzy")
	if err != nil {
		return fmt.Errorf("failed to get fuzzy flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts, err := driverOpts(cmd)
	if err != nil {
		return err
	}
	pOpts, err := prettyOpts(cmd)
	if err != nil {
		return err
	}

	// Проверяем, файл это или директория
	st, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	timer := observ.NewTimer()
	defer func() {
		if showTimings {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	}()

	if !st.IsDir() {
		defer timer.Track(observ.PhaseParse, targetPath)()
		if fuzzy {
			return runParseFuzzyFile(targetPath, outFormat, opts, pOpts)
		}
		return runParseFile(targetPath, outFormat, opts, pOpts)
	}

	if fuzzy {
		return fmt.Errorf("--fuzzy is only supported for single files")
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	withCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if withCache {
		cache, cacheErr := driver.OpenDiskCache("isl")
		if cacheErr != nil {
			return fmt.Errorf("failed to open parse cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	defer timer.Track(observ.PhaseWalk, targetPath)()
	return runParseDir(cmd, targetPath, jobs, quiet, opts, pOpts)
}

func runParseFile(path, outFormat string, opts driver.Options, pOpts diagfmt.PrettyOpts) error {
	result := driver.ParseFile(path, opts)
	reportBag(result, outFormat, pOpts)

	if outFormat == "json" {
		return diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, jsonOpts())
	}
	if result.OK && result.Domain != nil {
		fmt.Fprint(os.Stdout, format.Unparse(result.Domain, format.Options{}))
	}
	if !result.OK {
		return fmt.Errorf("parse failed with errors")
	}
	return nil
}

func runParseFuzzyFile(path, outFormat string, opts driver.Options, pOpts diagfmt.PrettyOpts) error {
	result := driver.ParseFuzzyFile(path, opts)
	reportBag(&result.Result, outFormat, pOpts)

	if outFormat == "json" {
		return writeFuzzyJSON(os.Stdout, result)
	}

	if result.Domain != nil {
		fmt.Fprint(os.Stdout, format.Unparse(result.Domain, format.Options{}))
	}
	fmt.Fprintf(os.Stdout, "coverage: %.2f\n", result.Coverage)
	for _, p := range result.Partials {
		fmt.Fprintf(os.Stdout, "partial %s: %s\n", p.Guess, p.Reason)
	}
	return nil
}

func runParseDir(cmd *cobra.Command, dir string, jobs int, quiet bool, opts driver.Options, pOpts diagfmt.PrettyOpts) error {
	fs, results, err := driver.ParseDir(cmd.Context(), dir, jobs, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	hasErrors := false
	for _, r := range results {
		if !quiet {
			status := "ok"
			switch {
			case !r.OK:
				status = "errors"
			case r.Cached:
				status = "ok (cached)"
			}
			fmt.Fprintf(os.Stdout, "== %s == %s\n", r.Path, status)
		}
		if r.Bag != nil && r.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, r.Bag, fs, pOpts)
		}
		if !r.OK {
			hasErrors = true
		}
	}

	if hasErrors {
		return fmt.Errorf("parse failed with errors")
	}
	return nil
}

// reportBag prints diagnostics to stderr; in json mode diagnostics ride
// along in the payload instead.
func reportBag(result *driver.Result, outFormat string, pOpts diagfmt.PrettyOpts) {
	if outFormat == "json" || result.Bag == nil || result.Bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, pOpts)
}

func jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
}

func writeFuzzyJSON(w *os.File, result *driver.FuzzyResult) error {
	type partialJSON struct {
		Guess  string `json:"guess"`
		Reason string `json:"reason,omitempty"`
		Raw    string `json:"raw"`
	}
	type fuzzyJSON struct {
		Coverage    float64                   `json:"coverage"`
		Partials    []partialJSON             `json:"partials,omitempty"`
		Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	}

	payload := fuzzyJSON{
		Coverage:    result.Coverage,
		Diagnostics: diagfmt.BuildDiagnosticsOutput(result.Bag, result.FileSet, jsonOpts()),
	}
	for _, p := range result.Partials {
		payload.Partials = append(payload.Partials, partialJSON{
			Guess:  p.Guess,
			Reason: p.Reason,
			Raw:    p.Raw,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
