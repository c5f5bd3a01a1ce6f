package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jcorbin/pandext/internal/decorate"
	"github.com/jcorbin/pandext/internal/labels"
	"github.com/jcorbin/pandext/internal/oututil"
)

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan FILE...",
		Short: "List the example and custom labels of documents",
		Long: `List the example and custom labels of documents.

Each labeled definition prints with its number and the line it was first
defined on; repeated definitions are listed after them. Use "-" to read
standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range args {
				doc, err := readDoc(cmd, name)
				if err != nil {
					return err
				}
				an := a.builder().Analyze(doc, name)
				if len(args) > 1 {
					fmt.Fprintf(out, "%v:\n", name)
					pw := oututil.NewPrefixWriter("  ", out)
					if err := writeScan(pw, an); err != nil {
						return err
					}
					if err := pw.Close(); err != nil {
						return err
					}
				} else if err := writeScan(out, an); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// scanRow is one line of scan output.
type scanRow struct {
	section string
	text    string
}

func writeScan(w io.Writer, an *decorate.Analysis) error {
	var rows []scanRow
	for _, label := range an.Examples.Order {
		n := an.Examples.Numbers[label]
		rows = append(rows, scanRow{"examples", fmt.Sprintf("(%v) @%v line %v: %q",
			n, label, an.Examples.FirstLines[label], an.Examples.Contents[label])})
	}
	if an.Custom != nil {
		for _, label := range an.Custom.Order {
			rendered, ok := an.Custom.Rendered[label]
			if !ok {
				rendered = label
			}
			rows = append(rows, scanRow{"custom labels", fmt.Sprintf("(%v) {::%v} line %v: %q",
				rendered, label, an.Custom.FirstLines[label], an.Custom.Contents[label])})
		}
	}
	rows = append(rows, duplicateRows("@", an.Examples)...)
	if an.Custom != nil {
		rows = append(rows, duplicateRows("::", an.Custom)...)
	}
	if len(rows) == 0 {
		return nil
	}

	i, section := 0, ""
	return oututil.WriteLines(w, func(w io.Writer) bool {
		row := rows[i]
		if row.section != section {
			section = row.section
			fmt.Fprintf(w, "%v:\n", section)
		}
		fmt.Fprintf(w, "  %v\n", row.text)
		i++
		return i < len(rows)
	})
}

func duplicateRows(sigil string, r *labels.Result) []scanRow {
	dups := make([]*labels.Duplicate, 0, len(r.Duplicates))
	for _, dup := range r.Duplicates {
		dups = append(dups, dup)
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].FirstLine < dups[j].FirstLine })

	var rows []scanRow
	for _, dup := range dups {
		for _, line := range dup.Lines {
			rows = append(rows, scanRow{"duplicates", fmt.Sprintf("%v%v line %v repeats line %v: %q",
				sigil, dup.Label, line, dup.FirstLine, dup.FirstContent)})
		}
	}
	return rows
}
