package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jcorbin/pandext/internal/decorate"
	"github.com/jcorbin/pandext/internal/termview"
)

func (a *app) previewCmd() *cobra.Command {
	var (
		cursor int
		plain  bool
	)
	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Show a document as the live view draws it",
		Long: `Show a document as the live view draws it.

Markers and references are replaced by their numbers and labels, except near
the cursor where the source is revealed. Colors follow the terminal unless
--plain is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDoc(cmd, args[0])
			if err != nil {
				return err
			}
			set := a.builder().Build(decorate.View{Doc: doc, Path: args[0], Cursor: cursor, Live: true})

			out := cmd.OutOrStdout()
			var r *lipgloss.Renderer
			if plain {
				r = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
			} else {
				r = lipgloss.NewRenderer(out)
			}
			surface := termview.NewSurface(doc, r, nil)
			if err := decorate.Load(surface, set); err != nil {
				return err
			}
			_, err = fmt.Fprint(out, surface.Render())
			return err
		},
	}
	cmd.Flags().IntVarP(&cursor, "cursor", "c", -1, "cursor offset")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors and text attributes")
	return cmd
}
