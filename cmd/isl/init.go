package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"isl/internal/langver"
	"isl/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new ISL project",
	Long: `Initialize a new ISL project by creating a project manifest (isl.toml)
and a starter domain (main.isl). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes an ISL project at the specified target path (or the
// current working directory when no argument or "." is provided) by creating
// an isl.toml manifest and a main.isl starter domain.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a project name from the directory basename (falling back to
// "isl-project" for invalid names), and refuses to initialize if isl.toml
// already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "isl-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create main.isl if not exists
	mainPath := filepath.Join(target, "main.isl")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainISL(name)), 0o600); err != nil {
			return fmt.Errorf("failed to write main.isl: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized ISL project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - main.isl\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - main.isl (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for an ISL project
// using the provided package name.
func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# ISL project manifest
[package]
name = "%s"
language_version = "%s"

[parse]
strict = true
`, name, langver.Latest())
}

// defaultMainISL returns the starter domain written by init: one entity,
// one behavior, enough to parse and format cleanly.
func defaultMainISL(name string) string {
	domainName := exportName(name)
	return fmt.Sprintf(`@version "%s"

domain %s {
  version: "1.0"
  owner: "team@example.com"

  entity Greeting {
    id: UUID
    message: String { maxLength: 140 }
  }

  behavior SendGreeting {
    input {
      message: String
    }
    output {
      success: Greeting
    }
  }
}
`, langver.Latest(), domainName)
}

// exportName turns a directory basename into a capitalized identifier.
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			if upper {
				b.WriteRune(r - 'a' + 'A')
				upper = false
			} else {
				b.WriteRune(r)
			}
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			upper = false
		default:
			upper = true
		}
	}
	if b.Len() == 0 {
		return "Main"
	}
	return b.String()
}
