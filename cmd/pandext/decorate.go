package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jcorbin/pandext/internal/decorate"
	"github.com/jcorbin/pandext/internal/oututil"
)

func (a *app) decorateCmd() *cobra.Command {
	var (
		cursor   int
		from, to int
	)
	cmd := &cobra.Command{
		Use:   "decorate FILE",
		Short: "Dump the live view decorations of a document",
		Long: `Dump the live view decorations of a document.

Decorations print in order, one per line, as the live view would build them
with the cursor at the given offset; a negative cursor is outside the
document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDoc(cmd, args[0])
			if err != nil {
				return err
			}
			view := decorate.View{Doc: doc, Path: args[0], Cursor: cursor, Live: true}
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				if !cmd.Flags().Changed("to") {
					to = doc.Len()
				}
				view.Viewport = &decorate.Viewport{From: from, To: to}
			}
			set := a.builder().Build(view)
			if err := set.Check(); err != nil {
				return err
			}
			return writeDecorations(cmd.OutOrStdout(), set)
		},
	}
	cmd.Flags().IntVarP(&cursor, "cursor", "c", -1, "cursor offset")
	cmd.Flags().IntVar(&from, "from", 0, "first visible offset")
	cmd.Flags().IntVar(&to, "to", 0, "last visible offset (default: end of document)")
	return cmd
}

func writeDecorations(w io.Writer, set decorate.Set) error {
	if len(set) == 0 {
		return nil
	}
	i := 0
	return oututil.WriteLines(w, func(w io.Writer) bool {
		fmt.Fprintf(w, "%+v\n", set[i])
		i++
		return i < len(set)
	})
}
