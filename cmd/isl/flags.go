package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"isl/internal/diagfmt"
	"isl/internal/driver"
	"isl/internal/limits"
	"isl/internal/project"
)

// useColor resolves the persistent --color flag against the terminal.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "auto", "on", "off":
	default:
		return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", colorFlag)
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr)), nil
}

func prettyOpts(cmd *cobra.Command) (diagfmt.PrettyOpts, error) {
	color, err := useColor(cmd)
	if err != nil {
		return diagfmt.PrettyOpts{}, err
	}
	return diagfmt.PrettyOpts{
		Color:     color,
		ShowNotes: true,
		ShowFixes: true,
	}, nil
}

// driverOpts builds parse options from the persistent flags and, when an
// isl.toml is discoverable from the working directory, the project manifest.
// The --max-diagnostics flag wins over the manifest when set explicitly.
func driverOpts(cmd *cobra.Command) (driver.Options, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Limits:         limits.Default(),
	}

	wd, err := os.Getwd()
	if err != nil {
		return opts, nil
	}
	manifest, found, err := project.Discover(wd)
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to load %s: %w", project.ManifestName, err)
	}
	if !found {
		return opts, nil
	}

	opts.Limits = manifest.Config.ResolveLimits()
	if manifest.Config.Parse.MaxDiagnostics > 0 && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.MaxDiagnostics = manifest.Config.Parse.MaxDiagnostics
	}
	return opts, nil
}
