package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jcorbin/pandext/internal/editing"
	"github.com/jcorbin/pandext/internal/textdoc"
)

// errNoList reports an editing command with nothing to act on.
var errNoList = errors.New("no extended list item there")

func (a *app) continueCmd() *cobra.Command {
	var (
		cursor int
		write  bool
	)
	cmd := &cobra.Command{
		Use:   "continue FILE",
		Short: "Start the next list item after the cursor",
		Long: `Start the next list item after the cursor.

The line is broken at the cursor and the next marker of the same list is
inserted; on an empty item the marker is removed instead, ending the list.
The edited document prints to standard output unless --write is given; the
new cursor offset is logged at debug level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := readBuffer(cmd, args[0])
			if err != nil {
				return err
			}
			cmds := editing.Commands{Settings: a.settings}
			change, ok := cmds.ContinueList(buf, cursor)
			if !ok {
				return fmt.Errorf("%w at offset %v", errNoList, cursor)
			}
			if err := buf.Apply(change); err != nil {
				return err
			}
			a.logger.Debug("continued list", "cursor", buf.Cursor())
			return a.writeBack(cmd, args[0], buf, write)
		},
	}
	cmd.Flags().IntVarP(&cursor, "cursor", "c", 0, "cursor offset")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "replace the document instead of printing it")
	return cmd
}

func (a *app) renumberCmd() *cobra.Command {
	var (
		line  int
		write bool
	)
	cmd := &cobra.Command{
		Use:   "renumber FILE",
		Short: "Renumber the fancy list items following a line",
		Long: `Renumber the fancy list items following a line.

Siblings after the item on the given line are renumbered to continue its
ordinal in the list's style. Nothing changes when renumbering is disabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := readBuffer(cmd, args[0])
			if err != nil {
				return err
			}
			cmds := editing.Commands{Settings: a.settings}
			changes := cmds.RenumberFancy(buf, line)
			a.logger.Debug("renumbered list", "line", line, "changes", len(changes))
			if err := buf.ApplyAll(changes...); err != nil {
				return err
			}
			return a.writeBack(cmd, args[0], buf, write)
		},
	}
	cmd.Flags().IntVarP(&line, "line", "l", 1, "line number of the item to continue from")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "replace the document instead of printing it")
	return cmd
}

func readBuffer(cmd *cobra.Command, name string) (*textdoc.Buffer, error) {
	doc, err := readDoc(cmd, name)
	if err != nil {
		return nil, err
	}
	return textdoc.NewBuffer(doc.String()), nil
}

func (a *app) writeBack(cmd *cobra.Command, name string, buf *textdoc.Buffer, write bool) error {
	if !write || name == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), buf.String())
		return err
	}
	return writeAtomic(name, func(w io.Writer) error {
		_, err := io.WriteString(w, buf.String())
		return err
	})
}
