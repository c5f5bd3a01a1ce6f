package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/renameio"
	"github.com/spf13/cobra"

	"github.com/jcorbin/pandext/internal/reading"
)

func (a *app) renderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render PATTERN...",
		Short: "Render documents to reading mode HTML",
		Long: `Render documents to reading mode HTML.

Each pattern may be a path or a doublestar glob such as 'docs/**/*.md'. Every
matched document is written next to itself with an .html extension, replacing
any earlier rendering atomically. With a single document, --output names the
destination instead; "-" is standard input or output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if output != "" && len(names) != 1 {
				return fmt.Errorf("--output needs exactly one document, have %v", len(names))
			}
			for _, name := range names {
				to := output
				if to == "" {
					to = htmlName(name)
				}
				if err := a.render(cmd, name, to); err != nil {
					return fmt.Errorf("failed to render %v: %w", name, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file, or - for standard output")
	return cmd
}

// expandPatterns globs every pattern, keeping the order of first match.
func expandPatterns(patterns []string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if pattern == "-" {
			names = append(names, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no documents match %q", pattern)
		}
		for _, name := range matches {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// htmlName replaces the extension of name with .html; standard input renders
// to standard output.
func htmlName(name string) string {
	if name == "-" {
		return "-"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".html"
}

func (a *app) render(cmd *cobra.Command, name, to string) error {
	doc, err := readDoc(cmd, name)
	if err != nil {
		return err
	}
	opts := reading.Options{Settings: a.settings, Registry: a.registry, Path: name}
	src := []byte(doc.String())

	if to == "-" {
		return reading.Render(cmd.OutOrStdout(), src, opts)
	}
	if to == name {
		return errors.New("refusing to overwrite the document itself")
	}
	a.logger.Debug("rendering", "from", name, "to", to)
	return writeAtomic(to, func(w io.Writer) error {
		return reading.Render(w, src, opts)
	})
}

// writeAtomic replaces the file at path with what write produces, leaving any
// prior file intact on failure.
func writeAtomic(path string, write func(w io.Writer) error) error {
	t, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer t.Cleanup()
	if err := write(t); err != nil {
		return err
	}
	if err := t.Chmod(0o644); err != nil {
		return err
	}
	return t.CloseAtomicallyReplace()
}
